package memcache

import "github.com/prometheus/client_golang/prometheus"

var (
	descHits = prometheus.NewDesc(
		"cache_hits_total",
		"Cache hits per namespace",
		[]string{"namespace"}, nil,
	)
	descMisses = prometheus.NewDesc(
		"cache_misses_total",
		"Cache misses per namespace",
		[]string{"namespace"}, nil,
	)
	descEvictions = prometheus.NewDesc(
		"cache_evictions_total",
		"Entries evicted by the capacity policy per namespace",
		[]string{"namespace"}, nil,
	)
	descKeys = prometheus.NewDesc(
		"cache_keys",
		"Live entries per namespace",
		[]string{"namespace"}, nil,
	)
	descBytes = prometheus.NewDesc(
		"cache_size_bytes",
		"Total bytes held (keys + values) per namespace",
		[]string{"namespace"}, nil,
	)
)

// StatsCollector exposes per-namespace cache statistics as Prometheus
// metrics. Snapshots are taken at scrape time.
type StatsCollector struct {
	registry *Registry
}

// NewStatsCollector creates a collector over registry. Register it with a
// prometheus.Registerer alongside the HTTP metrics.
func NewStatsCollector(registry *Registry) *StatsCollector {
	return &StatsCollector{registry: registry}
}

func (sc *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descHits
	ch <- descMisses
	ch <- descEvictions
	ch <- descKeys
	ch <- descBytes
}

func (sc *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	for name, s := range sc.registry.Stats() {
		ch <- prometheus.MustNewConstMetric(descHits, prometheus.CounterValue, float64(s.Hits), name)
		ch <- prometheus.MustNewConstMetric(descMisses, prometheus.CounterValue, float64(s.Misses), name)
		ch <- prometheus.MustNewConstMetric(descEvictions, prometheus.CounterValue, float64(s.Evictions), name)
		ch <- prometheus.MustNewConstMetric(descKeys, prometheus.GaugeValue, float64(s.NumberOfKeys), name)
		ch <- prometheus.MustNewConstMetric(descBytes, prometheus.GaugeValue, float64(s.TotalSize), name)
	}
}
