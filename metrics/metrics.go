// Package metrics publishes k-mer scan statistics to Prometheus.
//
// The scan is a batch job, so values are exported through a registry that
// is written once to a node-exporter textfile rather than served.
package metrics

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/muratgenctav/topkmers/counting"
)

const namespace = "topkmers"

// Scan holds the metrics of one counting run.
type Scan struct {
	records    *prometheus.GaugeVec
	windows    *prometheus.GaugeVec
	outOfRange *prometheus.GaugeVec
	dropped    *prometheus.GaugeVec
	keys       *prometheus.GaugeVec
	estimated  *prometheus.GaugeVec
	failed     *prometheus.GaugeVec
	duration   prometheus.Gauge
	workers    prometheus.Gauge
}

func partitionGauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, []string{"worker"})
}

// NewScan creates the run metrics and registers them with reg.
func NewScan(reg prometheus.Registerer) (*Scan, error) {
	s := &Scan{
		records:    partitionGauge("records", "Sequence records read by the worker."),
		windows:    partitionGauge("windows", "K-mer windows encoded by the worker."),
		outOfRange: partitionGauge("windows_out_of_range", "Windows skipped because their key belongs to another partition."),
		dropped:    partitionGauge("admission_dropped", "Windows refused by the frequency table admission rule."),
		keys:       partitionGauge("table_keys", "Distinct keys held by the worker's frequency table."),
		estimated:  partitionGauge("distinct_estimate", "HyperLogLog estimate of distinct keys in the partition."),
		failed:     partitionGauge("worker_failed", "1 if the worker stopped on an I/O error."),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of the scan, merge included.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Number of key-space partitions scanned.",
		}),
	}
	for _, c := range []prometheus.Collector{
		s.records, s.windows, s.outOfRange, s.dropped, s.keys, s.estimated, s.failed, s.duration, s.workers,
	} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}
	return s, nil
}

// Observe records the statistics of a finished scan.
func (s *Scan) Observe(stats []counting.PartitionStats, elapsed time.Duration) {
	s.workers.Set(float64(len(stats)))
	s.duration.Set(elapsed.Seconds())
	for _, st := range stats {
		w := strconv.Itoa(st.Worker)
		s.records.WithLabelValues(w).Set(float64(st.Records))
		s.windows.WithLabelValues(w).Set(float64(st.Windows))
		s.outOfRange.WithLabelValues(w).Set(float64(st.OutOfRange))
		s.dropped.WithLabelValues(w).Set(float64(st.Dropped))
		s.keys.WithLabelValues(w).Set(float64(st.Distinct))
		s.estimated.WithLabelValues(w).Set(float64(st.EstimatedDistinct))
		failed := 0.0
		if st.Err != nil {
			failed = 1
		}
		s.failed.WithLabelValues(w).Set(failed)
	}
}

// WriteTextfile writes everything gathered by g to path in the text
// exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
