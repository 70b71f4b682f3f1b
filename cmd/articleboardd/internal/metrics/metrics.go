// Package metrics exposes board activity to Prometheus.
package metrics

import (
	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "articleboard"

type Metrics struct {
	submitted prometheus.Counter
	rejected  *prometheus.CounterVec
	removed   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_submitted_total",
			Help:      "Drafts successfully submitted as articles.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_rejected_total",
			Help:      "Submission attempts rejected by validation, by failing field.",
		}, []string{"field"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_removed_total",
			Help:      "Remove requests, by whether an article matched.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.submitted, m.rejected, m.removed)
	return m
}

// ObserveSessions registers a gauge reporting the number of live sessions.
func (m *Metrics) ObserveSessions(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions",
		Help:      "Live browser sessions.",
	}, func() float64 {
		return float64(count())
	}))
}

// Hooks returns board hooks that record into m.
func (m *Metrics) Hooks() board.Hooks {
	return board.Hooks{
		Submitted: func(models.Article) {
			m.submitted.Inc()
		},
		Rejected: func(err *board.ValidationError) {
			for _, field := range err.Fields() {
				m.rejected.WithLabelValues(string(field)).Inc()
			}
		},
		Removed: func(_ uuid.UUID, found bool) {
			result := "miss"
			if found {
				result = "hit"
			}
			m.removed.WithLabelValues(result).Inc()
		},
	}
}
