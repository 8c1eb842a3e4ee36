package flight

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hugr-lab/tabprobe/action"
)

type metrics struct {
	requestDuration *prometheus.HistogramVec
	rowsTotal       *prometheus.CounterVec
	resultBytes     *prometheus.CounterVec
}

// newMetrics registers the DoAction metrics on reg. A nil reg leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tabprobe",
			Name:      "action_duration_seconds",
			Help:      "Time (in seconds) spent serving DoAction calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action", "status_code"}),
		rowsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "tabprobe",
			Name:      "action_input_rows_total",
			Help:      "Total number of table rows received in DoAction bodies.",
		}, []string{"action"}),
		resultBytes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "tabprobe",
			Name:      "action_result_bytes_total",
			Help:      "Total number of result bytes sent, after compression.",
		}, []string{"action"}),
	}
}

// actionLabel keeps the label set bounded: names outside the action table become "unknown".
func actionLabel(name string) string {
	for _, d := range action.Actions() {
		if d.Name == name {
			return name
		}
	}
	return "unknown"
}
