package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSessionObserver(t *testing.T) {
	obs := SessionObserver{}

	before := testutil.ToFloat64(saves.WithLabelValues("auto", "failure"))
	obs.SaveFinished("auto", errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(saves.WithLabelValues("auto", "failure")))

	before = testutil.ToFloat64(exports.WithLabelValues("success"))
	obs.ExportFinished(nil)
	assert.Equal(t, before+1, testutil.ToFloat64(exports.WithLabelValues("success")))

	before = testutil.ToFloat64(staleResponses.WithLabelValues("suggest"))
	obs.ResponseDiscarded("suggest")
	assert.Equal(t, before+1, testutil.ToFloat64(staleResponses.WithLabelValues("suggest")))
}
