package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"zof/internal/rootfind"
)

type metrics struct {
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zof_solves_total",
				Help: "Completed solve calls by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		iterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zof_solve_iterations",
				Help:    "Iterations used per solve call.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.solves, m.iterations)
	return m
}

func (m *metrics) observe(method string, res *rootfind.Result, err error) {
	outcome := "converged"
	switch {
	case err != nil:
		outcome = rootfind.KindOf(err)
	case res != nil && !res.Converged:
		outcome = "capped"
	}
	m.solves.WithLabelValues(method, outcome).Inc()
	if res != nil {
		m.iterations.WithLabelValues(method).Observe(float64(res.Iterations))
	}
}
