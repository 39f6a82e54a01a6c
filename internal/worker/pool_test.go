package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// noopProcessFunc returns a basic process function that echoes its input.
func noopProcessFunc() ProcessFunc[int, int] {
	return func(item WorkItem[int]) ProcessResult[int] {
		return ProcessResult[int]{Value: item.Value, Index: item.Index}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc[int, int] {
	return func(item WorkItem[int]) ProcessResult[int] {
		atomic.AddInt32(counter, 1)
		return ProcessResult[int]{Value: item.Value * 2, Index: item.Index}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults[R any](pool *Pool[int, R]) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(4, 10, countingProcessFunc(&processed))
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem[int]{Value: i, Index: i})
	}

	go pool.Close()

	resultCount := collectResults(pool)
	if resultCount != numItems {
		t.Errorf("results = %d; want %d", resultCount, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolSingleWorker tests pool with single worker.
func TestPoolSingleWorker(t *testing.T) {
	pool := NewPool(1, 5, noopProcessFunc())
	pool.Start()

	const numItems = 5
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem[int]{Index: i})
	}

	go pool.Close()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32
	slowProcessFunc := func(item WorkItem[int]) ProcessResult[int] {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult[int]{Index: item.Index}
	}

	pool := NewPool(2, 100, slowProcessFunc)
	pool.Start()

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem[int]{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

// TestPoolIsStopped tests the IsStopped method.
func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(2, 10, noopProcessFunc())
	pool.Start()

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	pool.Stop()

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

// TestPoolTrySubmit tests non-blocking submission.
func TestPoolTrySubmit(t *testing.T) {
	slowProcessFunc := func(item WorkItem[int]) ProcessResult[int] {
		time.Sleep(100 * time.Millisecond)
		return ProcessResult[int]{}
	}

	pool := NewPool(1, 2, slowProcessFunc)
	pool.Start()

	if !pool.TrySubmit(WorkItem[int]{Index: 0}) {
		t.Error("first TrySubmit should succeed")
	}

	pool.Stop()
	if pool.TrySubmit(WorkItem[int]{Index: 1}) {
		t.Error("TrySubmit after Stop should return false")
	}

	go pool.Close()
	collectResults(pool)
}

// TestPoolNumWorkers tests NumWorkers method.
func TestPoolNumWorkers(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"valid workers", 4, 4},
		{"minimum workers", 1, 1},
		{"zero defaults to 1", 0, 1},
		{"negative defaults to 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.input, 10, noopProcessFunc())
			if got := pool.NumWorkers(); got != tt.expected {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.expected)
			}
		})
	}
}

// TestPoolResultOrder tests that all results are received regardless of order.
func TestPoolResultOrder(t *testing.T) {
	variableDelayFunc := func(item WorkItem[int]) ProcessResult[int] {
		if item.Index%2 == 0 {
			time.Sleep(10 * time.Millisecond)
		}
		return ProcessResult[int]{Index: item.Index}
	}

	pool := NewPool(4, 20, variableDelayFunc)
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem[int]{Index: i})
	}

	go pool.Close()

	seen := make(map[int]bool)
	for result := range pool.Results() {
		seen[result.Index] = true
	}

	if len(seen) != numItems {
		t.Errorf("received %d results; want %d", len(seen), numItems)
	}
	for i := 0; i < numItems; i++ {
		if !seen[i] {
			t.Errorf("missing index %d in results", i)
		}
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(8, 50, countingProcessFunc(&counter))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem[int]{Value: i, Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestNewPoolWithOptions tests the functional options constructor.
func TestNewPoolWithOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		pool := NewPoolWithOptions(noopProcessFunc())
		if pool.NumWorkers() != 1 {
			t.Errorf("default workers = %d; want 1", pool.NumWorkers())
		}
		if pool.bufferSize != 10 {
			t.Errorf("default bufferSize = %d; want 10", pool.bufferSize)
		}
	})

	t.Run("with multiple options", func(t *testing.T) {
		pool := NewPoolWithOptions(noopProcessFunc(), WithWorkers(8), WithBufferSize(100))
		if pool.NumWorkers() != 8 {
			t.Errorf("NumWorkers() = %d; want 8", pool.NumWorkers())
		}
		if pool.bufferSize != 100 {
			t.Errorf("bufferSize = %d; want 100", pool.bufferSize)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		pool := NewPoolWithOptions(noopProcessFunc(), WithWorkers(0), WithBufferSize(-5))
		if pool.NumWorkers() != 1 {
			t.Errorf("NumWorkers() = %d; want 1 (default)", pool.NumWorkers())
		}
		if pool.bufferSize != 10 {
			t.Errorf("bufferSize = %d; want 10 (default)", pool.bufferSize)
		}
	})
}

func TestMap(t *testing.T) {
	t.Run("results keep input order", func(t *testing.T) {
		items := []int{5, 1, 4, 2, 3}
		got, err := Map(items, 3, func(v int) (int, error) {
			time.Sleep(time.Duration(v) * time.Millisecond)
			return v * v, nil
		})
		if err != nil {
			t.Fatalf("Map() error: %v", err)
		}
		want := []int{25, 1, 16, 4, 9}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Map()[%d] = %d; want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Map([]int{1, 2, 3}, 2, func(v int) (int, error) {
			if v == 2 {
				return 0, boom
			}
			return v, nil
		})
		if !errors.Is(err, boom) {
			t.Errorf("Map() error = %v; want boom", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := Map([]int(nil), 4, func(v int) (int, error) { return v, nil })
		if err != nil || len(got) != 0 {
			t.Errorf("Map(nil) = %v, %v; want empty", got, err)
		}
	})
}
