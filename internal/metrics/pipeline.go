package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Load outcomes recorded by ObserveLoad.
const (
	LoadOK          = "ok"
	LoadUnavailable = "unavailable"
)

// Pipeline holds the metrics of one run on a private registry.
type Pipeline struct {
	registry       *prometheus.Registry
	loads          *prometheus.CounterVec
	samples        *prometheus.CounterVec
	stageDuration  *prometheus.GaugeVec
	maxRelError    *prometheus.GaugeVec
	artifactsTotal prometheus.Counter
	heapAllocBytes prometheus.Gauge
}

// NewPipeline creates the metric set and registers Go runtime collectors.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcarea_dataset_loads_total",
			Help: "Attempts to load the persisted result tables, by outcome.",
		}, []string{"result"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcarea_samples_generated_total",
			Help: "Sample records produced, by region and source.",
		}, []string{"region", "source"}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mcarea_stage_duration_seconds",
			Help: "Wall time of each pipeline stage in the last run.",
		}, []string{"stage"}),
		maxRelError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mcarea_relative_error_max",
			Help: "Largest relative error observed, by region.",
		}, []string{"region"}),
		artifactsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcarea_artifacts_written_total",
			Help: "Image files written.",
		}),
		heapAllocBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mcarea_heap_alloc_bytes",
			Help: "Heap bytes in use at the end of the run.",
		}),
	}
	p.registry.MustRegister(
		p.loads, p.samples, p.stageDuration, p.maxRelError, p.artifactsTotal, p.heapAllocBytes,
		collectors.NewGoCollector(),
	)
	return p
}

// Registry exposes the underlying registry as a Gatherer.
func (p *Pipeline) Registry() prometheus.Gatherer { return p.registry }

// ObserveLoad counts one load attempt.
func (p *Pipeline) ObserveLoad(result string) { p.loads.WithLabelValues(result).Inc() }

// ObserveSamples counts generated records.
func (p *Pipeline) ObserveSamples(region, source string, n int) {
	p.samples.WithLabelValues(region, source).Add(float64(n))
}

// ObserveStage records a stage duration.
func (p *Pipeline) ObserveStage(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// ObserveMaxError records the largest relative error of a region.
func (p *Pipeline) ObserveMaxError(region string, v float64) {
	p.maxRelError.WithLabelValues(region).Set(v)
}

// ObserveArtifacts counts written images.
func (p *Pipeline) ObserveArtifacts(n int) { p.artifactsTotal.Add(float64(n)) }

// ObserveMemory records a memory snapshot.
func (p *Pipeline) ObserveMemory(s MemorySnapshot) { p.heapAllocBytes.Set(float64(s.HeapAlloc)) }

// WriteTextfile dumps all metrics in the text exposition format, atomically
// replacing path.
func (p *Pipeline) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}
