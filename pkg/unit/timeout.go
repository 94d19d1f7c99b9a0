package unit

import (
	"fmt"
	"sync"
	"time"
)

// RunTimeout is the hard limit for a single unit evaluation.
const RunTimeout = 5 * time.Second

// runResult is the internal type used to pass evaluation results through
// channels.
type runResult struct {
	value string
	err   error
}

// waitWithTimeout waits for a result from ch, but returns a timeout
// error if the evaluation exceeds the given limit. It uses a generation
// counter to discard stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan runResult,
	timeout time.Duration,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			// A newer evaluation was started; discard this result.
			return "", fmt.Errorf("evaluation superseded by newer request")
		}

		return res.value, res.err

	case <-timer.C:
		return "", fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
