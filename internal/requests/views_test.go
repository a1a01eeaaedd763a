package requests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewsShareTheSameRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requesterCo, validCreate())
	require.NoError(t, err)

	outgoing, err := svc.Outgoing(ctx, requesterCo)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, created.ID, outgoing[0].ID)

	incoming, err := svc.Incoming(ctx, counterpartyCo)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, created.ID, incoming[0].ID)

	// a mutation through the incoming path is visible in the outgoing view
	_, err = svc.Respond(ctx, created.ID, counterpartyCo, DecisionAccept)
	require.NoError(t, err)

	outgoing, err = svc.Outgoing(ctx, requesterCo)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, StatusAccepted, outgoing[0].Status)
}

func TestViewsFilterByParty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, requesterCo, validCreate())
	require.NoError(t, err)

	other := validCreate()
	other.CounterpartyCompany = "Google LLC"
	_, err = svc.Create(ctx, "Microsoft Corp", other)
	require.NoError(t, err)

	outgoing, err := svc.Outgoing(ctx, requesterCo)
	require.NoError(t, err)
	assert.Len(t, outgoing, 1)

	incoming, err := svc.Incoming(ctx, "Google LLC")
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "Microsoft Corp", incoming[0].RequesterCompany)

	incoming, err = svc.Incoming(ctx, "Apple Inc")
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestViewsAnnotateOverdue(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requesterCo, validCreate())
	require.NoError(t, err)

	svc.now = func() time.Time { return baseTime.Add(9 * 24 * time.Hour) }

	outgoing, err := svc.Outgoing(ctx, requesterCo)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.True(t, outgoing[0].IsOverdue)

	incoming, err := svc.Incoming(ctx, counterpartyCo)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.True(t, incoming[0].IsOverdue)

	_ = created
}

func TestAlertsCoverBothDirections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// outgoing from DBS, incoming to DBS, and one unrelated request
	outReq, err := svc.Create(ctx, "DBS", validCreate())
	require.NoError(t, err)

	toDBS := validCreate()
	toDBS.CounterpartyCompany = "DBS"
	inReq, err := svc.Create(ctx, "Apple Inc", toDBS)
	require.NoError(t, err)

	unrelated := validCreate()
	unrelated.CounterpartyCompany = "Google LLC"
	_, err = svc.Create(ctx, "Meta Platforms", unrelated)
	require.NoError(t, err)

	// nothing old enough yet
	alerts, err := svc.Alerts(ctx, "DBS")
	require.NoError(t, err)
	assert.Empty(t, alerts)

	svc.now = func() time.Time { return baseTime.Add(10 * 24 * time.Hour) }

	alerts, err = svc.Alerts(ctx, "DBS")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, outReq.ID, alerts[0].ID)
	assert.Equal(t, inReq.ID, alerts[1].ID)
	for _, a := range alerts {
		assert.True(t, a.IsOverdue)
		assert.Equal(t, StatusPending, a.Status)
	}
}

func TestAlertsExcludeResolvedRequests(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, requesterCo, validCreate())
	require.NoError(t, err)

	_, err = svc.Respond(ctx, created.ID, counterpartyCo, DecisionReject)
	require.NoError(t, err)

	svc.now = func() time.Time { return baseTime.Add(30 * 24 * time.Hour) }

	alerts, err := svc.Alerts(ctx, requesterCo)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
