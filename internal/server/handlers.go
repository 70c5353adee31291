// Package server is the HTTP adapter around the root-finding core: a
// synchronous solve endpoint plus an asynchronous run lifecycle with SSE
// iteration streaming, cancellation, and CSV export.
package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"zof/internal/config"
	"zof/internal/function"
	"zof/internal/rootfind"
	"zof/internal/sse"
)

type Server struct {
	cfg  config.Config
	log  *slog.Logger
	hub  *sse.Hub
	runs *registry
	reg  *prometheus.Registry
	met  *metrics
}

func New(cfg config.Config, log *slog.Logger) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		cfg:  cfg,
		log:  log,
		hub:  sse.NewHub(),
		runs: newRegistry(),
		reg:  reg,
		met:  newMetrics(reg),
	}
}

// buildRequest validates the wire request, applies configured defaults, and
// compiles the function.
func (s *Server) buildRequest(p SolveRequest) (rootfind.Request, error) {
	req := rootfind.Request{
		Method:  rootfind.Method(p.Method),
		A:       p.A,
		B:       p.B,
		X0:      p.X0,
		X1:      p.X1,
		Delta:   p.Delta,
		Tol:     p.Tol,
		MaxIter: p.MaxIter,
	}
	if req.Tol <= 0 {
		req.Tol = s.cfg.Solver.Tol
	}
	if req.MaxIter <= 0 {
		req.MaxIter = s.cfg.Solver.MaxIter
	}
	if req.MaxIter > s.cfg.Solver.MaxIterCap {
		req.MaxIter = s.cfg.Solver.MaxIterCap
	}
	if req.Method == rootfind.MethodModifiedSecant && req.Delta <= 0 {
		req.Delta = 0.01
	}

	var f function.Func
	var err error
	switch {
	case p.Function != "" && len(p.Coeffs) > 0:
		return req, fmt.Errorf("%w: give either an expression or coefficients, not both", rootfind.ErrInvalidInput)
	case len(p.Coeffs) > 0:
		f, err = function.NewPoly(p.Coeffs)
	case p.Function != "":
		f, err = function.New(p.Function)
	default:
		return req, fmt.Errorf("%w: an expression or coefficients are required", rootfind.ErrInvalidInput)
	}
	if err != nil {
		return req, err
	}

	if p.Relax != nil {
		if req.Method != rootfind.MethodFixedPoint {
			return req, fmt.Errorf("%w: relax applies to fixed_point only", rootfind.ErrInvalidInput)
		}
		f = function.Relaxed(f, *p.Relax)
	}

	req.F = f
	return req, nil
}

// Solve runs one method to completion and returns the full Result.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var p SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	req, err := s.buildRequest(p)
	if err != nil {
		s.writeFailure(w, err, nil)
		return
	}

	res, err := rootfind.Solve(req, nil)
	s.met.observe(p.Method, res, err)
	if err != nil {
		s.log.Info("solve_failed", "method", p.Method, "kind", rootfind.KindOf(err))
		s.writeFailure(w, err, res)
		return
	}

	s.log.Info("solve_done",
		"method", p.Method,
		"root", res.Root,
		"iterations", res.Iterations,
		"converged", res.Converged,
	)
	writeJSON(w, http.StatusOK, res)
}

// Start launches an asynchronous run and returns its ID plus pre-sampled
// chart points for the function.
func (s *Server) Start(w http.ResponseWriter, r *http.Request) {
	var p SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	req, err := s.buildRequest(p)
	if err != nil {
		s.writeFailure(w, err, nil)
		return
	}

	lo, hi := chartWindow(req)
	xs, ys := sample(req.F, lo, hi, s.cfg.Solver.ChartPoints)

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{
		ID:        id,
		Method:    req.Method,
		Req:       p,
		CreatedAt: time.Now(),
		Cancel:    cancel,
	}
	s.runs.save(rs)
	s.log.Info("run_started", "id", id, "method", p.Method)

	go s.run(ctx, rs, req)

	writeJSON(w, http.StatusOK, map[string]any{
		"id": id,
		"xs": xs,
		"ys": ys,
	})
}

// run executes the method, recording and publishing each iteration.
func (s *Server) run(ctx context.Context, rs *RunState, req rootfind.Request) {
	s.publish(rs.ID, map[string]any{"type": "start", "id": rs.ID})

	onIter := func(it rootfind.Iter) error {
		select {
		case <-ctx.Done():
			return rootfind.ErrStopped
		default:
		}
		rs.appendIter(it)
		s.publish(rs.ID, map[string]any{"type": "iter", "iter": it})
		return nil
	}

	res, err := rootfind.Solve(req, onIter)
	s.met.observe(string(req.Method), res, err)

	if err != nil {
		if errors.Is(err, rootfind.ErrStopped) {
			rs.fail("stopped", err.Error())
			s.publish(rs.ID, terminalPayload("stopped", "", nil))
			return
		}
		kind := rootfind.KindOf(err)
		rs.fail(kind, err.Error())
		s.log.Info("run_failed", "id", rs.ID, "kind", kind)
		s.publish(rs.ID, terminalPayload(kind, err.Error(), nil))
		return
	}

	rs.finish(res)
	s.log.Info("run_done", "id", rs.ID, "root", res.Root, "iterations", res.Iterations)
	s.publish(rs.ID, terminalPayload("", "", res))
}

// terminalPayload is the single source of the terminal event shapes, shared
// by the live publish in run and the replay in Stream.
func terminalPayload(kind, errMsg string, res *rootfind.Result) map[string]any {
	switch {
	case res != nil:
		return map[string]any{
			"type":       "done",
			"root":       res.Root,
			"finalError": res.FinalError,
			"iterations": res.Iterations,
			"converged":  res.Converged,
		}
	case kind == "stopped":
		return map[string]any{"type": "stopped"}
	default:
		return map[string]any{"type": "error", "kind": kind, "err": errMsg}
	}
}

func (s *Server) publish(id string, payload map[string]any) {
	msg, _ := json.Marshal(payload)
	s.hub.Publish(id, string(msg))
}

// Stop cancels a running solve.
func (s *Server) Stop(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	rs := s.runs.get(id)
	if rs == nil {
		http.Error(w, "unknown id", http.StatusNotFound)
		return
	}
	if rs.Cancel != nil {
		rs.Cancel()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export renders the recorded trace as CSV with the method's column layout.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	rs := s.runs.get(id)
	if rs == nil {
		http.Error(w, "unknown id", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=iterations_"+id+".csv")

	cols := rootfind.Columns(rs.Method)
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, 0, len(cols)+1)
	header = append(header, "k")
	for _, c := range cols {
		header = append(header, c.Header)
	}
	_ = cw.Write(header)

	for _, it := range rs.Trace() {
		row := make([]string, 0, len(cols)+1)
		row = append(row, strconv.Itoa(it.K))
		for _, c := range cols {
			row = append(row, fmtFloat(c.Value(it)))
		}
		_ = cw.Write(row)
	}
}

// Stream is the SSE feed of run events.
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := s.hub.Subscribe(id)
	defer cancel()

	// unblock the client right away; headers otherwise sit buffered until
	// the first event arrives
	flusher.Flush()

	// replay what the run has already recorded so a late subscriber still
	// sees the full history and the terminal event; around the subscribe
	// boundary an iteration can arrive twice, clients key on k
	if rs := s.runs.get(id); rs != nil {
		for _, it := range rs.Trace() {
			msg, _ := json.Marshal(map[string]any{"type": "iter", "iter": it})
			writeEvent(w, flusher, string(msg))
		}
		if done, kind, errMsg, res := rs.Terminal(); done {
			msg, _ := json.Marshal(terminalPayload(kind, errMsg, res))
			writeEvent(w, flusher, string(msg))
		}
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			writeEvent(w, flusher, msg)
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, msg string) {
	fmt.Fprintf(w, "event: msg\n")
	fmt.Fprintf(w, "data: %s\n\n", msg)
	flusher.Flush()
}

// writeFailure maps a core failure to the JSON error body. Partial traces
// accompany mid-loop failures.
func (s *Server) writeFailure(w http.ResponseWriter, err error, res *rootfind.Result) {
	kind := rootfind.KindOf(err)
	status := http.StatusBadRequest
	if kind == "internal" {
		status = http.StatusInternalServerError
	}
	body := map[string]any{
		"error": err.Error(),
		"kind":  kind,
	}
	if res != nil && len(res.Trace) > 0 {
		body["trace"] = res.Trace
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// chartWindow picks the x range to pre-sample for plotting: the bracket for
// bracketing methods, a window around the seeds otherwise.
func chartWindow(req rootfind.Request) (float64, float64) {
	switch req.Method {
	case rootfind.MethodBisection, rootfind.MethodRegulaFalsi:
		return math.Min(req.A, req.B), math.Max(req.A, req.B)
	case rootfind.MethodSecant:
		lo, hi := math.Min(req.X0, req.X1), math.Max(req.X0, req.X1)
		pad := math.Max(1, hi-lo)
		return lo - pad, hi + pad
	default:
		return req.X0 - 5, req.X0 + 5
	}
}

// sample evaluates f on an even grid. Points where f is undefined come back
// as nil so they serialize as JSON null instead of breaking the encoder.
func sample(f function.Func, lo, hi float64, n int) ([]float64, []*float64) {
	if n < 2 {
		n = 2
	}
	xs := make([]float64, n)
	ys := make([]*float64, n)
	h := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*h
		xs[i] = x
		if y, err := f.Eval(x); err == nil {
			v := y
			ys[i] = &v
		}
	}
	return xs, ys
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}
