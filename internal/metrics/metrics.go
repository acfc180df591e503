package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

// Recorder collects generation and validation outcomes on its own registry
type Recorder struct {
	registry  *prometheus.Registry
	scheduled prometheus.Counter
	skipped   *prometheus.CounterVec
	attempts  prometheus.Histogram
	entries   prometheus.Gauge
	conflicts prometheus.Gauge
}

func NewRecorder() *Recorder {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		scheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timetable_units_scheduled_total",
			Help: "Units placed by the generator.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timetable_units_skipped_total",
			Help: "Units left unscheduled by the generator, by reason.",
		}, []string{"reason"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timetable_placement_attempts",
			Help:    "Random trials spent per unit.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timetable_entries",
			Help: "Entries produced by the last generation run.",
		}),
		conflicts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timetable_conflicts",
			Help: "Conflicts found by the last validation.",
		}),
	}
	recorder.registry.MustRegister(recorder.scheduled, recorder.skipped, recorder.attempts, recorder.entries, recorder.conflicts)
	return recorder
}

func (recorder *Recorder) ObserveBuild(report model.BuildReport) {
	recorder.scheduled.Add(float64(report.Scheduled))
	recorder.entries.Set(float64(report.Scheduled))
	if report.Reason != "" {
		recorder.skipped.WithLabelValues(string(report.Reason)).Add(float64(report.Units))
	}
	for _, skipped := range report.Skipped {
		recorder.skipped.WithLabelValues(string(skipped.Reason)).Inc()
	}
	for _, attempts := range report.Attempts {
		recorder.attempts.Observe(float64(attempts))
	}
}

func (recorder *Recorder) ObserveValidation(result model.ValidationResult) {
	recorder.conflicts.Set(float64(len(result.Conflicts)))
}

func (recorder *Recorder) Registry() *prometheus.Registry {
	return recorder.registry
}

// WriteToTextfile dumps the collected metrics in the node-exporter textfile format
func (recorder *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, recorder.registry)
}
