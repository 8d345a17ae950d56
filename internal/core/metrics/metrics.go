package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "media_dashboard"

// Load results
const (
	LoadOK      = "ok"
	LoadPartial = "partial"
	LoadEmpty   = "empty"
	LoadFailed  = "failed"
)

// Recorder counts filter cascades, marker clicks and data loads. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	cascades *prometheus.CounterVec
	flipped  *prometheus.CounterVec
	selected prometheus.Gauge
	clicks   *prometheus.CounterVec
	loads    *prometheus.CounterVec
	excluded prometheus.Counter
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		cascades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_cascades_total",
			Help:      "Completed filter cascades by dimension.",
		}, []string{"dimension"}),
		flipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_flipped_records_total",
			Help:      "Records whose predicate result flipped during a cascade, by dimension.",
		}, []string{"dimension"}),
		selected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selection_size",
			Help:      "Records passing every active filter.",
		}),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marker_transitions_total",
			Help:      "Marker click transitions by kind.",
		}, []string{"transition"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Data loads by result.",
		}, []string{"result"}),
		excluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "excluded_records_total",
			Help:      "Input records excluded by validation.",
		}),
	}
	reg.MustRegister(r.cascades, r.flipped, r.selected, r.clicks, r.loads, r.excluded)
	return r
}

// ObserveCascade records one completed filter cascade.
func (r *Recorder) ObserveCascade(dimension string, flipped, selected int) {
	if r == nil {
		return
	}
	r.cascades.WithLabelValues(dimension).Inc()
	r.flipped.WithLabelValues(dimension).Add(float64(flipped))
	r.selected.Set(float64(selected))
}

// ObserveSelection sets the selection size without counting a cascade.
func (r *Recorder) ObserveSelection(selected int) {
	if r == nil {
		return
	}
	r.selected.Set(float64(selected))
}

// ObserveClick records one marker transition.
func (r *Recorder) ObserveClick(transition string) {
	if r == nil {
		return
	}
	r.clicks.WithLabelValues(transition).Inc()
}

// ObserveLoad records a data load and its excluded record count.
func (r *Recorder) ObserveLoad(result string, excluded int) {
	if r == nil {
		return
	}
	r.loads.WithLabelValues(result).Inc()
	r.excluded.Add(float64(excluded))
}
