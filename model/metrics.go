package model

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records solver activity. A nil *Metrics records nothing.
type Metrics struct {
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	columns  *prometheus.GaugeVec
	rows     *prometheus.GaugeVec
	nonzeros *prometheus.GaugeVec
}

// NewMetrics registers the solver metrics with reg. Passing
// prometheus.DefaultRegisterer exposes them on the default handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: model, status (model status string or "error")
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "highsdex",
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Total solver runs by final model status",
		}, []string{"model", "status"}),

		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "highsdex",
			Subsystem: "solver",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of solver runs in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60, 300},
		}, []string{"model"}),

		columns: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "highsdex",
			Subsystem: "model",
			Name:      "columns",
			Help:      "Number of columns of the last solved model",
		}, []string{"model"}),

		rows: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "highsdex",
			Subsystem: "model",
			Name:      "rows",
			Help:      "Number of rows of the last solved model",
		}, []string{"model"}),

		nonzeros: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "highsdex",
			Subsystem: "model",
			Name:      "nonzeros",
			Help:      "Number of constraint matrix nonzeros of the last solved model",
		}, []string{"model"}),
	}
}

func (mt *Metrics) observeModel(name string, st ProblemStats) {
	if mt == nil {
		return
	}
	mt.columns.WithLabelValues(name).Set(float64(st.Vars))
	mt.rows.WithLabelValues(name).Set(float64(st.Constraints))
	mt.nonzeros.WithLabelValues(name).Set(float64(st.Nonzeros))
}

func (mt *Metrics) observeSolve(name, status string, d time.Duration) {
	if mt == nil {
		return
	}
	mt.solves.WithLabelValues(name, status).Inc()
	mt.duration.WithLabelValues(name).Observe(d.Seconds())
}
