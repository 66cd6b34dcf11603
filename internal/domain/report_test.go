package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsFromCounts(t *testing.T) {
	stats := StatsFromCounts(map[TicketStatus]int64{
		TicketStatusOpen:       2,
		TicketStatusInProgress: 1,
		TicketStatusResolved:   1,
		TicketStatusClosed:     1,
	})
	assert.Equal(t, TicketStats{Total: 5, Open: 2, InProgress: 1, Pending: 0, Resolved: 2}, stats)
	assert.True(t, stats.Reconciles())
}

func TestStatsFromCountsIgnoresUnknownStatusInBuckets(t *testing.T) {
	stats := StatsFromCounts(map[TicketStatus]int64{TicketStatusOpen: 1, TicketStatus("Arquivado"): 2})
	assert.Equal(t, int64(3), stats.Total)
	assert.False(t, stats.Reconciles())
}

func TestKPIsFromCounts(t *testing.T) {
	kpis := KPIsFromCounts(map[TicketStatus]int64{TicketStatusPending: 4, TicketStatusClosed: 3, TicketStatusResolved: 2})
	assert.Equal(t, KPIs{Pending: 4, Resolved: 5}, kpis)
}

func TestDateRangeBounds(t *testing.T) {
	rng := DateRange{
		Start: time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 3, 1, 0, 0, 0, time.UTC),
	}
	from, before := rng.Bounds()
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), before)
	assert.Equal(t, 3, rng.Days())
}
