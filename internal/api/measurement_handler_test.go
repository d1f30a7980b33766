package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// daysAgo formats a past calendar date for request bodies.
func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(dateFormat)
}

func TestLogWeightFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/weights", ts.aliceToken, map[string]any{
		"weight_kg":  82.4,
		"entry_date": daysAgo(1),
		"notes":      "morning",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var entry struct {
		ID       string  `json:"id"`
		WeightKg float64 `json:"weightKg"`
	}
	decodeJSON(t, w, &entry)
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, 82.4, entry.WeightKg)

	w = ts.do(t, http.MethodGet, "/api/v1/weights", ts.aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Weights []struct {
			ID string `json:"id"`
		} `json:"weights"`
	}
	decodeJSON(t, w, &list)
	require.Len(t, list.Weights, 1)
	assert.Equal(t, entry.ID, list.Weights[0].ID)

	// Other users never see it.
	w = ts.do(t, http.MethodGet, "/api/v1/weights", ts.bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &list)
	assert.Empty(t, list.Weights)

	w = ts.do(t, http.MethodDelete, "/api/v1/weights/"+entry.ID, ts.aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLogWeightRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing weight", map[string]any{"entry_date": daysAgo(1)}},
		{"malformed date", map[string]any{"weight_kg": 82.4, "entry_date": "20/08/2026"}},
		{"weight out of range", map[string]any{"weight_kg": 500, "entry_date": daysAgo(1)}},
		{"future date", map[string]any{"weight_kg": 82.4, "entry_date": daysAgo(-30)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/v1/weights", ts.aliceToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListWeightsDateRangeQuery(t *testing.T) {
	ts := newTestServer(t)

	for _, d := range []int{30, 10, 1} {
		w := ts.do(t, http.MethodPost, "/api/v1/weights", ts.aliceToken, map[string]any{
			"weight_kg":  82.4,
			"entry_date": daysAgo(d),
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// The to bound is inclusive of its whole day.
	path := fmt.Sprintf("/api/v1/weights?from=%s&to=%s", daysAgo(15), daysAgo(1))
	w := ts.do(t, http.MethodGet, path, ts.aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Weights []struct {
			EntryDate string `json:"entryDate"`
		} `json:"weights"`
	}
	decodeJSON(t, w, &list)
	assert.Len(t, list.Weights, 2)

	w = ts.do(t, http.MethodGet, "/api/v1/weights?from=bogus", ts.aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogMeasurementFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/measurements", ts.aliceToken, map[string]any{
		"date": daysAgo(1),
		"values": map[string]any{
			"waist": 82.0,
			"chest": 104.5,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/api/v1/measurements", ts.aliceToken, map[string]any{
		"date": daysAgo(1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "at least one value is required")

	w = ts.do(t, http.MethodGet, "/api/v1/measurements", ts.aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Measurements []struct {
			ID string `json:"id"`
		} `json:"measurements"`
	}
	decodeJSON(t, w, &list)
	assert.Len(t, list.Measurements, 1)
}
