package orchestrator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceStatsAdd(t *testing.T) {
	a := SourceStats{EventsCreated: 2, EventsUpdated: 1, VenuesCreated: 1}
	a.AddErrorf("event %q: %v", "Mystery Show", "bad start time")

	b := SourceStats{EventsCreated: 3, Errors: []string{"venue \"X\": no name"}}
	a.Add(b)

	assert.Equal(t, 5, a.EventsCreated)
	assert.Equal(t, 1, a.EventsUpdated)
	assert.Equal(t, 1, a.VenuesCreated)
	assert.Len(t, a.Errors, 2)
	assert.Equal(t, `event "Mystery Show": bad start time`, a.Errors[0])
}

func TestRunResultJSONDuration(t *testing.T) {
	r := RunResult{
		PerSource: map[string]*SourceStats{
			"eventbrite": {EventsCreated: 3},
		},
		Totals:   Totals{EventsCreated: 3},
		Duration: 1500 * time.Millisecond,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, float64(1500), decoded["durationMs"])
	assert.NotContains(t, decoded, "Duration")
	assert.Contains(t, decoded, "perSource")
	assert.Contains(t, decoded, "totals")
}
