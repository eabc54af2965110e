package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeJob struct {
	id   int
	fail bool
}

type fakeResult struct {
	id  int
	err error
}

func (r *fakeResult) GetError() error { return r.err }

func (j *fakeJob) Execute(ctx context.Context) Result {
	time.Sleep(time.Millisecond)
	if j.fail {
		return &fakeResult{id: j.id, err: errors.New("boom")}
	}
	return &fakeResult{id: j.id}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	go func() {
		for i := 0; i < 10; i++ {
			pool.Submit(&fakeJob{id: i})
		}
		pool.Close()
	}()
	results := pool.Wait()

	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	seen := make(map[int]bool)
	for _, r := range results {
		fr := r.(*fakeResult)
		if fr.err != nil {
			t.Errorf("job %d failed: %v", fr.id, fr.err)
		}
		seen[fr.id] = true
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 distinct jobs, got %d", len(seen))
	}
}

func TestPool_ErrorsAreReturnedNotDropped(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	go func() {
		pool.Submit(&fakeJob{id: 1, fail: true})
		pool.Submit(&fakeJob{id: 2})
		pool.Close()
	}()
	results := pool.Wait()

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure among results, got %d", failures)
	}
}

func TestPool_ZeroWorkersStillWorks(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	go func() {
		pool.Submit(&fakeJob{id: 1})
		pool.Close()
	}()
	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestLimiter_PerDomainBudgets(t *testing.T) {
	l := NewLimiter(1000, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := l.Wait(ctx, "https://www.ptt.cc/bbs/Stock/index.html"); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	// a different domain draws from its own bucket, so this returns fast
	if err := l.Wait(ctx, "https://openapi.twse.com.tw/v1/quotes"); err != nil {
		t.Fatalf("cross-domain wait: %v", err)
	}
}

func TestLimiter_WaitWithDelayHonorsContext(t *testing.T) {
	l := NewLimiter(1000, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.WaitWithDelay(ctx, "https://www.ptt.cc/", time.Second)
	if err == nil {
		t.Error("expected context error")
	}
}
