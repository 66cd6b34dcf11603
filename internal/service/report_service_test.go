package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

func newReportFixture() (*ReportService, *memTicketRepository) {
	tickets := newMemTicketRepository(testNames())
	svc := NewReportService(tickets, config.DashboardConfig{DefaultWindowDays: 30, MaxWindowDays: 366}, func() time.Time {
		return time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	})
	return svc, tickets
}

func seedStatuses(tickets *memTicketRepository, creator int64, statuses ...domain.TicketStatus) {
	for _, status := range statuses {
		t := domain.Ticket{Title: "t", Status: status, Priority: domain.TicketPriorityLow, CreatorID: creator}
		if status.Terminal() {
			t.ClosedAt = &fixedNow
		}
		tickets.seed(t)
	}
}

func TestStatsBucketsReconcile(t *testing.T) {
	for _, consistent := range []bool{false, true} {
		svc, tickets := newReportFixture()
		seedStatuses(tickets, aliceActor.ID,
			domain.TicketStatusOpen,
			domain.TicketStatusOpen,
			domain.TicketStatusInProgress,
			domain.TicketStatusResolved,
			domain.TicketStatusClosed,
		)

		stats, err := svc.Stats(context.Background(), adminActor, consistent)
		require.NoError(t, err)

		assert.Equal(t, domain.TicketStats{Total: 5, Open: 2, InProgress: 1, Pending: 0, Resolved: 2}, stats)
		assert.True(t, stats.Reconciles())
	}
}

func TestStatsAreScopedForOrdinaryUsers(t *testing.T) {
	svc, tickets := newReportFixture()
	seedStatuses(tickets, aliceActor.ID, domain.TicketStatusOpen, domain.TicketStatusPending)
	seedStatuses(tickets, bobActor.ID, domain.TicketStatusOpen, domain.TicketStatusClosed, domain.TicketStatusClosed)

	stats, err := svc.Stats(context.Background(), aliceActor, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStats{Total: 2, Open: 1, Pending: 1}, stats)

	stats, err = svc.Stats(context.Background(), techActor, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
}

func TestStatsPropagatesCountFailure(t *testing.T) {
	svc, tickets := newReportFixture()
	tickets.CountErr = errors.New("statement timeout")

	_, err := svc.Stats(context.Background(), adminActor, false)
	require.EqualError(t, err, "statement timeout")
}

func TestKPIsFoldClosedIntoResolved(t *testing.T) {
	svc, tickets := newReportFixture()
	seedStatuses(tickets, aliceActor.ID, domain.TicketStatusOpen, domain.TicketStatusPending, domain.TicketStatusResolved)
	seedStatuses(tickets, bobActor.ID, domain.TicketStatusClosed, domain.TicketStatusInProgress)

	kpis, err := svc.KPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.KPIs{Open: 1, InProgress: 1, Pending: 1, Resolved: 2}, kpis)
}

func TestDailySeriesIsSparse(t *testing.T) {
	svc, tickets := newReportFixture()
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	for _, created := range []time.Time{day(1, 9), day(1, 23), day(3, 0), day(4, 0), day(2, 0).Add(-time.Second)} {
		tickets.seed(domain.Ticket{Title: "t", Status: domain.TicketStatusOpen, CreatorID: 3, CreatedAt: created})
	}

	rng, series, err := svc.DailySeries(context.Background(), "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	assert.Equal(t, 3, rng.Days())
	require.Len(t, series, 2)
	assert.Equal(t, day(1, 0), series[0].Date)
	assert.Equal(t, int64(3), series[0].Count)
	assert.Equal(t, day(3, 0), series[1].Date)
	assert.Equal(t, int64(1), series[1].Count)
}

func TestDailySeriesDefaultWindow(t *testing.T) {
	svc, _ := newReportFixture()

	rng, series, err := svc.DailySeries(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, series)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), rng.End)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, 30, rng.Days())
}

func TestDailySeriesValidation(t *testing.T) {
	svc, _ := newReportFixture()

	cases := map[string][2]string{
		"only start":     {"2024-03-01", ""},
		"only end":       {"", "2024-03-01"},
		"bad start":      {"03/01/2024", "2024-03-02"},
		"bad end":        {"2024-03-01", "tomorrow"},
		"inverted":       {"2024-03-05", "2024-03-01"},
		"window too big": {"2020-01-01", "2024-01-01"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.DailySeries(context.Background(), c[0], c[1])
			assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation), "got %v", err)
		})
	}
}
