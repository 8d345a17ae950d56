package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveCascade("category", 3, 7)
	r.ObserveCascade("category", 2, 5)
	r.ObserveCascade("time", 1, 4)
	r.ObserveClick("select")
	r.ObserveLoad(LoadPartial, 2)
	r.ObserveLoad(LoadOK, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cascades.WithLabelValues("category")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.flipped.WithLabelValues("category")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.selected))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.clicks.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.loads.WithLabelValues(LoadPartial)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.excluded))

	r.ObserveSelection(9)
	assert.Equal(t, 9.0, testutil.ToFloat64(r.selected))

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 9, count)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveCascade("time", 1, 1)
		r.ObserveSelection(1)
		r.ObserveClick("switch")
		r.ObserveLoad(LoadFailed, 0)
	})
}
