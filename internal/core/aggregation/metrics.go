package aggregation

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	phaseDuration *prometheus.HistogramVec
	recordsRead   prometheus.Counter
	fetchFailures prometheus.Counter
)

// InitMetrics registers the pipeline metrics with reg. Only the first call
// registers; later calls are no-ops. Before it is called nothing is observed.
func InitMetrics(reg prometheus.Registerer) {
	metricsOnce.Do(func() {
		phaseDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "perfcube",
				Subsystem: "pipeline",
				Name:      "phase_duration_seconds",
				Help:      "Duration of pipeline phases (read data, process data) in seconds.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"phase"},
		)
		recordsRead = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "perfcube",
			Subsystem: "pipeline",
			Name:      "records_read_total",
			Help:      "Total number of records fetched for aggregation.",
		})
		fetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "perfcube",
			Subsystem: "pipeline",
			Name:      "fetch_failures_total",
			Help:      "Total number of aggregation requests whose record fetch failed.",
		})
		reg.MustRegister(phaseDuration, recordsRead, fetchFailures)
	})
}

func observePhase(phase string, seconds float64) {
	if phaseDuration != nil {
		phaseDuration.WithLabelValues(phase).Observe(seconds)
	}
}

func addRecordsRead(n int) {
	if recordsRead != nil {
		recordsRead.Add(float64(n))
	}
}

func incFetchFailures() {
	if fetchFailures != nil {
		fetchFailures.Inc()
	}
}
