package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlightDeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err, _ := flight.Do("regulation:s1:rankingRules", func() (any, error) {
				executions.Add(1)
				<-release
				return "rules", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = value
		}()
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected 1 execution, got %d", got)
	}
	for i, value := range results {
		if value != "rules" {
			t.Fatalf("caller %d got %v", i, value)
		}
	}
}

func TestSingleFlightSequentialCallsRunSeparately(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	count := 0

	for i := 0; i < 3; i++ {
		_, _, shared := flight.Do("key", func() (any, error) {
			count++
			return nil, nil
		})
		if shared {
			t.Fatalf("call %d unexpectedly shared", i)
		}
	}

	if count != 3 {
		t.Fatalf("expected 3 executions, got %d", count)
	}
}
