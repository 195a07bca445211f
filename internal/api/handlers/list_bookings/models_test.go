package list_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	query := url.Values{
		"userId":     {"user-1"},
		"status":     {"confirmed"},
		"resourceId": {"court-1"},
		"from":       {"2025-10-01"},
		"to":         {"2025-10-31"},
		"limit":      {"20"},
		"offset":     {"40"},
	}

	req, err := ToServiceRequest(query, loc)
	require.NoError(t, err)

	assert.Equal(t, "user-1", *req.UserID)
	assert.Equal(t, "confirmed", *req.Status)
	assert.Equal(t, "court-1", *req.ResourceID)
	assert.Nil(t, req.ResourceKind)
	assert.True(t, req.From.Equal(time.Date(2025, 10, 1, 0, 0, 0, 0, loc)))
	assert.True(t, req.To.Equal(time.Date(2025, 11, 1, 0, 0, 0, 0, loc)), "date upper bound is inclusive")
	assert.Equal(t, uint64(20), req.Limit)
	assert.Equal(t, uint64(40), req.Offset)
}

func TestToServiceRequest_RFC3339AndErrors(t *testing.T) {
	req, err := ToServiceRequest(url.Values{"to": {"2025-10-15T12:00:00Z"}}, time.UTC)
	require.NoError(t, err)
	assert.True(t, req.To.Equal(time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)))

	for _, q := range []url.Values{
		{"from": {"yesterday"}},
		{"limit": {"-1"}},
		{"offset": {"x"}},
	} {
		_, err := ToServiceRequest(q, time.UTC)
		assert.Error(t, err, q.Encode())
	}
}
