package unit

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// Engine runs unit scripts in a sandboxed zygomys environment. Each Run
// creates a fresh sandbox so one node's evaluation can never leak state
// into another's. Runs on the same Engine supersede one another: when a
// newer Run starts, an older in-flight result is discarded on arrival.
// Callers whose overlapping evaluations must all complete should give
// each its own Engine.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// NewEngine creates a new Engine with the default evaluation timeout.
func NewEngine() *Engine {
	return &Engine{timeout: RunTimeout}
}

// NewEngineTimeout creates an Engine with a custom evaluation timeout.
// Non-positive values fall back to the default.
func NewEngineTimeout(timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = RunTimeout
	}
	return &Engine{timeout: timeout}
}

// Run evaluates the spec's script with the given input values bound as
// in0..inN-1 and returns the printed form of the script's final value.
//
// Return semantics:
//   - On success: value + nil error
//   - On script failure (parse error, runtime error, unsupported input
//     value, timeout, panic): "" + error; the caller surfaces it on the
//     node without halting interaction elsewhere.
func (e *Engine) Run(spec *Spec, inputs []interface{}) (string, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan runResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- runResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		value, err := e.run(spec, inputs)
		ch <- runResult{value: value, err: err}
	}()

	return waitWithTimeout(ch, e.timeout, gen, &e.mu, &e.generation)
}

// run performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) run(spec *Spec, inputs []interface{}) (string, error) {
	if strings.TrimSpace(spec.Source) == "" {
		return "", fmt.Errorf("unit %q has no source", spec.Name)
	}

	source, err := bindInputs(spec.Source, inputs)
	if err != nil {
		return "", err
	}

	// Sandbox mode prevents unit scripts from reaching the filesystem
	// or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	if err := env.LoadString(source); err != nil {
		return "", fmt.Errorf("unit %q: %w", spec.Name, err)
	}

	result, err := env.Run()
	if err != nil {
		return "", fmt.Errorf("unit %q: %w", spec.Name, err)
	}
	if result == nil {
		return "", nil
	}
	return result.SexpString(nil), nil
}

// bindInputs prefixes the script with one definition per input value, so
// the script sees in0..inN-1 as ordinary globals.
func bindInputs(source string, inputs []interface{}) (string, error) {
	if len(inputs) == 0 {
		return source, nil
	}
	var b strings.Builder
	for i, v := range inputs {
		lit, err := sexpLiteral(v)
		if err != nil {
			return "", fmt.Errorf("input %d: %w", i, err)
		}
		fmt.Fprintf(&b, "(def in%d %s)\n", i, lit)
	}
	b.WriteString(source)
	return b.String(), nil
}

// sexpLiteral renders a Go value as a zygomys literal.
func sexpLiteral(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "nil", nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case string:
		return strconv.Quote(x), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
