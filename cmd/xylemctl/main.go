// Command xylemctl inspects and validates saved Xylem documents from
// the terminal, without starting the desktop app.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chazu/xylem/pkg/document"
	"github.com/chazu/xylem/pkg/unit"
)

func main() {
	root := &cobra.Command{
		Use:           "xylemctl",
		Short:         "Inspect and validate Xylem documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(unitsCmd(), inspectCmd(), validateCmd())

	if err := root.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the builtin unit catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := unit.Builtins()
			bold := color.New(color.Bold)
			for _, name := range reg.Names() {
				s := reg.Get(name)
				bold.Fprintf(cmd.OutOrStdout(), "%-14s", s.Name)
				fmt.Fprintf(cmd.OutOrStdout(), " %2d in %2d out  %s\n",
					len(s.Inputs), len(s.Outputs), s.Description)
			}
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a saved document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			name := doc.Name
			if name == "" {
				name = "(untitled)"
			}
			color.New(color.Bold).Fprintf(out, "%s\n", name)
			fmt.Fprintf(out, "id:    %s\n", doc.ID)
			fmt.Fprintf(out, "nodes: %d\n", len(doc.Nodes))
			fmt.Fprintf(out, "edges: %d\n", len(doc.Edges))
			for _, n := range doc.Nodes {
				fmt.Fprintf(out, "  %-6s %-14s at (%g, %g)\n",
					n.ID, n.Unit, n.Position.X, n.Position.Y)
			}
			for _, e := range doc.Edges {
				fmt.Fprintf(out, "  %s[out %d] -> %s[in %d]\n",
					e.From, e.Output, e.To, e.Input)
			}
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a document can be restored into a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			g, err := doc.Restore()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			color.Green("%s: ok (%d nodes, %d edges)", args[0], g.Len(), len(g.Edges()))
			return nil
		},
	}
}
