package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission results.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

type Metrics struct {
	Renders     prometheus.Counter
	Submissions *prometheus.CounterVec
}

// New registers the form counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candidate_form_renders_total",
			Help: "Number of times the application form was rendered.",
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "candidate_form_submissions_total",
			Help: "Application form submissions by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Renders, m.Submissions)
	return m
}

func (m *Metrics) ObserveRender() {
	if m == nil {
		return
	}
	m.Renders.Inc()
}

func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}
