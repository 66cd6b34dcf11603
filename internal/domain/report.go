package domain

import "time"

// TicketStats are scoped status counts. Open+InProgress+Pending+Resolved
// equals Total when no write interleaves the underlying counts.
type TicketStats struct {
	Total      int64
	Open       int64
	InProgress int64
	Pending    int64
	Resolved   int64
}

// Reconciles reports whether the buckets add up to the total.
func (s TicketStats) Reconciles() bool {
	return s.Open+s.InProgress+s.Pending+s.Resolved == s.Total
}

// StatsFromCounts folds per-status counts into the stats buckets.
func StatsFromCounts(counts map[TicketStatus]int64) TicketStats {
	var stats TicketStats
	for status, n := range counts {
		stats.Total += n
		switch status {
		case TicketStatusOpen:
			stats.Open += n
		case TicketStatusInProgress:
			stats.InProgress += n
		case TicketStatusPending:
			stats.Pending += n
		case TicketStatusResolved, TicketStatusClosed:
			stats.Resolved += n
		}
	}
	return stats
}

// KPIs is the fixed four-bucket dashboard summary.
type KPIs struct {
	Open       int64
	InProgress int64
	Pending    int64
	Resolved   int64
}

// KPIsFromCounts normalizes per-status counts; Resolved aggregates Closed.
func KPIsFromCounts(counts map[TicketStatus]int64) KPIs {
	stats := StatsFromCounts(counts)
	return KPIs{
		Open:       stats.Open,
		InProgress: stats.InProgress,
		Pending:    stats.Pending,
		Resolved:   stats.Resolved,
	}
}

// DailyCount is the number of tickets created on one UTC calendar day.
type DailyCount struct {
	Date  time.Time
	Count int64
}

// DateRange is an inclusive range of UTC calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bounds returns the half-open instant interval [start 00:00, end+1 00:00).
func (r DateRange) Bounds() (time.Time, time.Time) {
	start := truncateDay(r.Start)
	end := truncateDay(r.End).AddDate(0, 0, 1)
	return start, end
}

// Days is the number of calendar days covered.
func (r DateRange) Days() int {
	start, end := r.Bounds()
	return int(end.Sub(start).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
