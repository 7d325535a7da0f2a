package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"promoreel/internal/models"
	"promoreel/internal/pkg/logger"
)

type fakeQueue struct {
	mu       sync.Mutex
	enqueued []string
}

func (q *fakeQueue) Enqueue(_ context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueued = append(q.enqueued, jobID)
	return nil
}
func (q *fakeQueue) Poll(context.Context) (string, error) { return "", nil }
func (q *fakeQueue) Interval() time.Duration              { return time.Second }
func (q *fakeQueue) Backend() string                      { return "fake" }

func (q *fakeQueue) snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.enqueued...)
}

type sweepJobs struct {
	mu    sync.Mutex
	ready []string
}

func (s *sweepJobs) RequeueForRetry(_ context.Context, _ int, _ time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.ready
	s.ready = nil
	return out, nil
}

func (s *sweepJobs) CreateJob(context.Context, *models.Job) error          { return nil }
func (s *sweepJobs) GetJob(context.Context, string) (*models.Job, error)  { return nil, nil }
func (s *sweepJobs) GetJobByOrder(context.Context, string) (*models.Job, error) {
	return nil, nil
}
func (s *sweepJobs) MarkProcessing(context.Context, string) error                  { return nil }
func (s *sweepJobs) MarkDone(context.Context, string, string, []string) error      { return nil }
func (s *sweepJobs) MarkFailed(context.Context, string, string, time.Time) error   { return nil }
func (s *sweepJobs) ClaimOldestQueued(context.Context) (*models.Job, error)        { return nil, nil }
func (s *sweepJobs) ResetForRetry(context.Context, string) error                   { return nil }

// pollQueue serves pending ids one per Poll with a fast tick; an optional
// one-shot error exercises the loop's recovery path.
type pollQueue struct {
	mu      sync.Mutex
	pending []string
	errOnce error
}

func (q *pollQueue) Enqueue(context.Context, string) error { return nil }
func (q *pollQueue) Interval() time.Duration               { return time.Millisecond }
func (q *pollQueue) Backend() string                       { return "fake" }

func (q *pollQueue) Poll(context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.errOnce != nil {
		err := q.errOnce
		q.errOnce = nil
		return "", err
	}
	if len(q.pending) == 0 {
		return "", nil
	}
	id := q.pending[0]
	q.pending = q.pending[1:]
	return id, nil
}

type slowProcessor struct {
	mu      sync.Mutex
	active  int
	overlap bool
	done    []string
}

func (p *slowProcessor) ProcessJob(_ context.Context, jobID string) error {
	p.mu.Lock()
	p.active++
	if p.active > 1 {
		p.overlap = true
	}
	p.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	p.mu.Lock()
	p.active--
	p.done = append(p.done, jobID)
	p.mu.Unlock()
	return nil
}

func (p *slowProcessor) finished() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.done...)
}

func TestPollLoopProcessesOneJobAtATime(t *testing.T) {
	q := &pollQueue{pending: []string{"job-1", "job-2", "job-3"}}
	p := &slowProcessor{}
	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- pollLoop(ctx, Deps{Queue: q}, p, log)
	}()

	deadline := time.After(2 * time.Second)
	for len(p.finished()) < 3 {
		select {
		case <-deadline:
			t.Fatalf("jobs never drained, finished %v", p.finished())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if p.overlap {
		t.Error("two jobs ran at the same time")
	}
	if got := p.finished(); len(got) != 3 || got[0] != "job-1" || got[1] != "job-2" || got[2] != "job-3" {
		t.Errorf("finished = %v", got)
	}
}

func TestPollLoopSurvivesPollError(t *testing.T) {
	q := &pollQueue{pending: []string{"job-1"}, errOnce: errors.New("connection reset")}
	p := &slowProcessor{}
	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- pollLoop(ctx, Deps{Queue: q}, p, log)
	}()

	deadline := time.After(2 * time.Second)
	for len(p.finished()) < 1 {
		select {
		case <-deadline:
			t.Fatal("job after poll error never processed")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if got := p.finished(); len(got) != 1 || got[0] != "job-1" {
		t.Errorf("finished = %v", got)
	}
}

func TestSweepLoopRequeuesEligibleJobs(t *testing.T) {
	q := &fakeQueue{}
	jobs := &sweepJobs{ready: []string{"job-a", "job-b"}}
	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sweepLoop(ctx, Deps{Queue: q, Jobs: jobs, SweepInterval: 10 * time.Millisecond}, 3, log)
	}()

	deadline := time.After(2 * time.Second)
	for len(q.snapshot()) < 2 {
		select {
		case <-deadline:
			t.Fatalf("sweep never enqueued, got %v", q.snapshot())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	got := q.snapshot()
	if len(got) != 2 || got[0] != "job-a" || got[1] != "job-b" {
		t.Errorf("enqueued = %v", got)
	}
}
