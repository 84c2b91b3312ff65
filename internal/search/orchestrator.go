package search

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/marcgrab/marcgrab/internal/fetch"
	"github.com/marcgrab/marcgrab/internal/library"
	"github.com/marcgrab/marcgrab/internal/ratelimit"
)

// AllEndpoints selects the whole endpoint list as a task's scope.
const AllEndpoints = -1

// Task is one in-flight or completed search. Progress is reported as
// ordered status updates on a one-way channel that is closed when the
// task reaches a terminal state.
type Task struct {
	updates chan StatusUpdate
	stop    atomic.Bool
	done    chan struct{}
}

// Updates returns the task's status stream. Updates arrive in endpoint
// order, one endpoint at a time.
func (t *Task) Updates() <-chan StatusUpdate {
	return t.updates
}

// Cancel requests a cooperative stop. An in-flight request is not
// aborted mid-flight, but its endpoint reports Canceled instead of the
// request's outcome; later endpoints are never started.
func (t *Task) Cancel() {
	t.stop.Store(true)
}

// Wait blocks until the task has fully stopped.
func (t *Task) Wait() {
	<-t.done
}

// CancelAndWait requests a stop and blocks until the worker has exited.
func (t *Task) CancelAndWait() {
	t.Cancel()
	t.Wait()
}

// Runner launches search tasks on a dedicated background worker. At
// most one task is active at a time: starting a new one cancels and
// awaits any prior active task first.
type Runner struct {
	mu      sync.Mutex
	active  *Task
	client  *fetch.Client
	limiter *ratelimit.Limiter
	log     *slog.Logger
}

// NewRunner creates a runner using the given HTTP client and limiter.
func NewRunner(client *fetch.Client, limiter *ratelimit.Limiter, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{client: client, limiter: limiter, log: log}
}

// Start launches a search over the endpoint list. Scope is either
// AllEndpoints or a single endpoint index (retry). The endpoints slice
// is the task's snapshot; the caller must not mutate it while the task
// runs.
func (r *Runner) Start(endpoints []library.Endpoint, query Query, scope int) *Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.active.CancelAndWait()
	}

	t := &Task{
		updates: make(chan StatusUpdate, 3*len(endpoints)+1),
		done:    make(chan struct{}),
	}
	r.active = t

	go r.run(t, endpoints, query, scope)
	return t
}

func (r *Runner) run(t *Task, endpoints []library.Endpoint, query Query, scope int) {
	defer func() {
		close(t.updates)
		close(t.done)
	}()

	indices := make([]int, 0, len(endpoints))
	if scope == AllEndpoints {
		for i := range endpoints {
			indices = append(indices, i)
		}
	} else if scope >= 0 && scope < len(endpoints) {
		indices = append(indices, scope)
	}

	for _, i := range indices {
		if t.stop.Load() {
			r.log.Info("search stopped", "endpoint", endpoints[i].Name)
			return
		}

		url, err := query.BuildURL(endpoints[i])
		if err != nil {
			r.log.Warn("cannot build search URL", "library", endpoints[i].Name, "error", err)
			t.updates <- StatusUpdate{Index: i, Outcome: OutcomeError, Detail: err.Error()}
			continue
		}

		t.updates <- StatusUpdate{Index: i, Outcome: OutcomeSearching, URL: url}

		if t.stop.Load() {
			t.updates <- StatusUpdate{Index: i, Outcome: OutcomeCanceled, URL: url}
			r.log.Info("search canceled", "library", endpoints[i].Name)
			return
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(context.Background()); err != nil {
				t.updates <- StatusUpdate{Index: i, Outcome: OutcomeError, URL: url, Detail: err.Error()}
				continue
			}
		}

		resp, err := r.client.Get(context.Background(), url)

		// A cancel issued while the request was in flight flips this
		// endpoint to Canceled regardless of how the request resolved.
		if t.stop.Load() {
			t.updates <- StatusUpdate{Index: i, Outcome: OutcomeCanceled, URL: url}
			r.log.Info("search canceled", "library", endpoints[i].Name)
			return
		}

		if err != nil {
			r.log.Warn("search request failed", "library", endpoints[i].Name, "error", err)
			t.updates <- StatusUpdate{Index: i, Outcome: OutcomeError, URL: url, Detail: err.Error()}
			continue
		}

		result, err := Classify(resp)
		if err != nil {
			t.updates <- StatusUpdate{Index: i, Outcome: OutcomeError, URL: url, Detail: err.Error()}
			continue
		}

		if result == ResultFound {
			t.updates <- StatusUpdate{Index: i, Outcome: OutcomeFound, URL: resp.FinalURL}
		} else {
			t.updates <- StatusUpdate{Index: i, Outcome: OutcomeNotFound, URL: url}
		}
	}
}
