// Package metrics exposes cohort attendance as Prometheus gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"rosterdesk/internal/cohort"
)

// Recorder holds the dashboard's collectors.
type Recorder struct {
	students     *prometheus.GaugeVec
	activeOnsite prometheus.Gauge
	mutations    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		students: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rosterdesk",
			Name:      "cohort_students",
			Help:      "Students per cohort; state is total or present.",
		}, []string{"cohort", "state"}),
		activeOnsite: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rosterdesk",
			Name:      "active_onsite",
			Help:      "Students in any onsite cohort.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rosterdesk",
			Name:      "roster_mutations_total",
			Help:      "Accepted roster mutations by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(r.students, r.activeOnsite, r.mutations)
	return r
}

// Observe publishes a fresh aggregation.
func (r *Recorder) Observe(s cohort.Stats) {
	for _, c := range cohort.All {
		r.set(string(c), s.Of(c))
	}
	r.set("total", s.Total)
	r.activeOnsite.Set(float64(s.ActiveOnsite))
}

func (r *Recorder) set(name string, c cohort.Count) {
	r.students.WithLabelValues(name, "total").Set(float64(c.Total))
	r.students.WithLabelValues(name, "present").Set(float64(c.Present))
}

// Mutation counts one accepted roster change.
func (r *Recorder) Mutation(op string) {
	r.mutations.WithLabelValues(op).Inc()
}
