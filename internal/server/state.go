package server

import (
	"context"
	"sync"
	"time"

	"zof/internal/rootfind"
)

// SolveRequest is the wire form of one solve invocation. Function and Coeffs
// are alternative representations of the function: expression text, or
// polynomial coefficients ordered highest degree first. Exactly one must be
// set. For fixed_point the function is the g(x) form unless relax is given,
// in which case g(x) = x - relax*f(x) is derived from it.
type SolveRequest struct {
	Method   string    `json:"method"`
	Function string    `json:"function,omitempty"`
	Coeffs   []float64 `json:"coeffs,omitempty"`
	A        float64   `json:"a"`
	B        float64   `json:"b"`
	X0       float64   `json:"x0"`
	X1       float64   `json:"x1"`
	Delta    float64   `json:"delta"`
	Relax    *float64  `json:"relax,omitempty"`
	Tol      float64   `json:"tolerance"`
	MaxIter  int       `json:"max_iter"`
}

// RunState tracks one asynchronous run. The solve goroutine writes iterations
// and the terminal state; export and status reads take the same lock.
type RunState struct {
	ID        string
	Method    rootfind.Method
	Req       SolveRequest
	CreatedAt time.Time
	Cancel    context.CancelFunc

	mu     sync.Mutex
	iters  []rootfind.Iter
	result *rootfind.Result
	errMsg string
	kind   string
	done   bool
}

func (rs *RunState) appendIter(it rootfind.Iter) {
	rs.mu.Lock()
	rs.iters = append(rs.iters, it)
	rs.mu.Unlock()
}

func (rs *RunState) finish(res *rootfind.Result) {
	rs.mu.Lock()
	rs.result = res
	rs.done = true
	rs.mu.Unlock()
}

func (rs *RunState) fail(kind, msg string) {
	rs.mu.Lock()
	rs.kind = kind
	rs.errMsg = msg
	rs.done = true
	rs.mu.Unlock()
}

// Trace returns a copy of the iterations recorded so far.
func (rs *RunState) Trace() []rootfind.Iter {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]rootfind.Iter(nil), rs.iters...)
}

// Terminal reports whether the run has finished and how: a Result on
// success, otherwise the failure kind and message.
func (rs *RunState) Terminal() (done bool, kind, errMsg string, res *rootfind.Result) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.done, rs.kind, rs.errMsg, rs.result
}

// registry is the in-memory run store. Runs are never evicted; the process
// is a single-user tool, not a persistence layer.
type registry struct {
	mu   sync.Mutex
	runs map[string]*RunState
}

func newRegistry() *registry {
	return &registry{runs: map[string]*RunState{}}
}

func (r *registry) save(rs *RunState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[rs.ID] = rs
}

func (r *registry) get(id string) *RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs[id]
}
