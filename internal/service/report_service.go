package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// DateLayout is the wire format of report dates.
const DateLayout = "2006-01-02"

// ReportService computes ticket counts for dashboards.
type ReportService struct {
	tickets     repository.TicketRepository
	defaultDays int
	maxDays     int
	now         Clock
}

// NewReportService constructs the service.
func NewReportService(tickets repository.TicketRepository, cfg config.DashboardConfig, clock Clock) *ReportService {
	if clock == nil {
		clock = systemClock
	}
	defaultDays := cfg.DefaultWindowDays
	if defaultDays <= 0 {
		defaultDays = 30
	}
	return &ReportService{
		tickets:     tickets,
		defaultDays: defaultDays,
		maxDays:     cfg.MaxWindowDays,
		now:         clock,
	}
}

// Stats counts tickets in actor's scope.
//
// By default the five counts run concurrently and are joined before
// returning. They may observe different instants under concurrent writes, so
// the buckets reconcile with the total only when no write interleaves. With
// consistent set, one grouped query provides a single snapshot instead.
func (s *ReportService) Stats(ctx context.Context, actor domain.Actor, consistent bool) (domain.TicketStats, error) {
	scope := policy.ScopeFilter(actor)
	if consistent {
		counts, err := s.tickets.CountByStatus(ctx, repository.TicketFilter{CreatorID: scope.CreatorID})
		if err != nil {
			return domain.TicketStats{}, err
		}
		return domain.StatsFromCounts(counts), nil
	}

	filter := func(statuses ...domain.TicketStatus) repository.TicketFilter {
		return repository.TicketFilter{CreatorID: scope.CreatorID, Statuses: statuses}
	}

	var stats domain.TicketStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.tickets.Count(gctx, filter())
		stats.Total = n
		return err
	})
	g.Go(func() error {
		n, err := s.tickets.Count(gctx, filter(domain.TicketStatusOpen))
		stats.Open = n
		return err
	})
	g.Go(func() error {
		n, err := s.tickets.Count(gctx, filter(domain.TicketStatusInProgress))
		stats.InProgress = n
		return err
	})
	g.Go(func() error {
		n, err := s.tickets.Count(gctx, filter(domain.TicketStatusPending))
		stats.Pending = n
		return err
	})
	g.Go(func() error {
		n, err := s.tickets.Count(gctx, filter(domain.TicketStatusResolved, domain.TicketStatusClosed))
		stats.Resolved = n
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.TicketStats{}, err
	}
	return stats, nil
}

// KPIs returns global status counts in the four dashboard buckets.
func (s *ReportService) KPIs(ctx context.Context) (domain.KPIs, error) {
	counts, err := s.tickets.CountByStatus(ctx, repository.TicketFilter{})
	if err != nil {
		return domain.KPIs{}, err
	}
	return domain.KPIsFromCounts(counts), nil
}

// DailySeries returns tickets created per UTC day in the inclusive range, in
// ascending order. Days without tickets are omitted. Empty bounds select the
// default window ending today.
func (s *ReportService) DailySeries(ctx context.Context, startRaw, endRaw string) (domain.DateRange, []domain.DailyCount, error) {
	rng, err := s.resolveRange(startRaw, endRaw)
	if err != nil {
		return domain.DateRange{}, nil, err
	}
	from, before := rng.Bounds()
	series, err := s.tickets.CountByDay(ctx, from, before)
	if err != nil {
		return domain.DateRange{}, nil, err
	}
	return rng, series, nil
}

func (s *ReportService) resolveRange(startRaw, endRaw string) (domain.DateRange, error) {
	startRaw, endRaw = strings.TrimSpace(startRaw), strings.TrimSpace(endRaw)

	if startRaw == "" && endRaw == "" {
		today := s.now().UTC()
		end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		return domain.DateRange{Start: end.AddDate(0, 0, -(s.defaultDays - 1)), End: end}, nil
	}
	if startRaw == "" || endRaw == "" {
		return domain.DateRange{}, apperrors.NewValidationError("startDate and endDate must be given together", map[string]any{
			"startDate": startRaw,
			"endDate":   endRaw,
		})
	}

	details := map[string]any{}
	start, err := time.Parse(DateLayout, startRaw)
	if err != nil {
		details["startDate"] = "must be a date in YYYY-MM-DD format"
	}
	end, err := time.Parse(DateLayout, endRaw)
	if err != nil {
		details["endDate"] = "must be a date in YYYY-MM-DD format"
	}
	if len(details) > 0 {
		return domain.DateRange{}, apperrors.NewValidationError("invalid date range", details)
	}
	if start.After(end) {
		return domain.DateRange{}, apperrors.NewValidationError("startDate must not be after endDate", nil)
	}

	rng := domain.DateRange{Start: start, End: end}
	if s.maxDays > 0 && rng.Days() > s.maxDays {
		return domain.DateRange{}, apperrors.NewValidationError("date range too large", map[string]any{
			"max_days": s.maxDays,
		})
	}
	return rng, nil
}
