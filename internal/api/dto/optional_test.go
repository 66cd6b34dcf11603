package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTicketRequestAssignee(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSet bool
		wantID  *int64
	}{
		{name: "absent", body: `{"status":"OPEN"}`},
		{name: "null", body: `{"assignee_id":null}`, wantSet: true},
		{name: "number", body: `{"assignee_id":7}`, wantSet: true, wantID: ptr(7)},
		{name: "numeric string", body: `{"assignee_id":"8"}`, wantSet: true, wantID: ptr(8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req UpdateTicketRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			assert.Equal(t, tc.wantSet, req.AssigneeID.Set)
			assert.Equal(t, tc.wantID, req.AssigneeID.Value)
		})
	}

	var req UpdateTicketRequest
	assert.Error(t, json.Unmarshal([]byte(`{"assignee_id":"abc"}`), &req))
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-02-29"`), &d))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d.Time)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"29/02/2024"`), &d))
}

func ptr(v int64) *int64 { return &v }
