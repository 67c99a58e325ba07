package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/vic/ivm/pkg/inet"
)

func TestObserve(t *testing.T) {
	before := testutil.ToFloat64(rewrites.WithLabelValues("commute"))
	okBefore := testutil.ToFloat64(runs.WithLabelValues("metrics_test", "ok"))
	errBefore := testutil.ToFloat64(runs.WithLabelValues("metrics_test", "error"))

	s := inet.Stats{
		Rewrites:     5,
		Dereferences: 2,
		Rules:        map[inet.RuleKind]uint64{inet.RuleCommute: 3, inet.RuleDeref: 2},
		Live:         7,
	}
	Observe("metrics_test", s, time.Millisecond, nil)
	Observe("metrics_test", s, time.Millisecond, errors.New("boom"))

	assert.Equal(t, before+6, testutil.ToFloat64(rewrites.WithLabelValues("commute")))
	assert.Equal(t, okBefore+1, testutil.ToFloat64(runs.WithLabelValues("metrics_test", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(runs.WithLabelValues("metrics_test", "error")))
	assert.Equal(t, float64(7), testutil.ToFloat64(liveAgents))
}
