package requests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingAt(t0 time.Time) *TradeRequest {
	return &TradeRequest{
		RequestDate: t0,
		Status:      StatusPending,
	}
}

func TestIsOverdueThreshold(t *testing.T) {
	t0 := baseTime
	req := pendingAt(t0)

	assert.False(t, IsOverdue(req, t0, DefaultOverdueThreshold))
	assert.False(t, IsOverdue(req, t0.Add(7*24*time.Hour-time.Second), DefaultOverdueThreshold))

	// the boundary counts as overdue
	assert.True(t, IsOverdue(req, t0.Add(7*24*time.Hour), DefaultOverdueThreshold))
	assert.True(t, IsOverdue(req, t0.Add(8*24*time.Hour), DefaultOverdueThreshold))
}

func TestIsOverdueIgnoresResolvedRequests(t *testing.T) {
	t0 := baseTime

	for _, status := range []RequestStatus{StatusAccepted, StatusRejected} {
		req := pendingAt(t0)
		req.Status = status

		// a 30-day-old resolved request is not overdue
		assert.False(t, IsOverdue(req, t0.Add(30*24*time.Hour), DefaultOverdueThreshold))
	}
}

func TestIsOverdueMonotonicInAge(t *testing.T) {
	t0 := baseTime
	req := pendingAt(t0)

	became := t0.Add(DefaultOverdueThreshold)
	require.True(t, IsOverdue(req, became, DefaultOverdueThreshold))

	for _, later := range []time.Duration{time.Second, time.Hour, 90 * 24 * time.Hour} {
		assert.True(t, IsOverdue(req, became.Add(later), DefaultOverdueThreshold))
	}
}

func TestOverdueClearsOnAcceptance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requesterCo, validCreate())
	require.NoError(t, err)

	// still pending 8 days later: overdue
	svc.now = func() time.Time { return baseTime.Add(8 * 24 * time.Hour) }
	view, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, view.IsOverdue)

	// accepted on day 6, queried on day 8: not overdue
	svc.now = func() time.Time { return baseTime.Add(6 * 24 * time.Hour) }
	_, err = svc.Respond(ctx, created.ID, counterpartyCo, DecisionAccept)
	require.NoError(t, err)

	svc.now = func() time.Time { return baseTime.Add(8 * 24 * time.Hour) }
	view, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, view.IsOverdue)
}
