// Package dashboard aggregates oficio activity into the KPI cards and
// daily series rendered on the landing page.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/domain/entity"
	"github.com/centralviagens/viagens/internal/repository"
)

// DefaultPeriodDays is used when the requested period is not one of
// the supported windows.
const DefaultPeriodDays = 30

var validPeriods = map[int]bool{7: true, 30: true, 90: true}

// Stats is the dashboard payload for one period window.
type Stats struct {
	PeriodoDias int                     `json:"periodo_dias"`
	Total       int                     `json:"total"`
	Emitidos    int                     `json:"emitidos"`
	Rascunhos   int                     `json:"rascunhos"`
	Cancelados  int                     `json:"cancelados"`
	Serie       []repository.DailyCount `json:"serie"`
	Recentes    []entity.Oficio         `json:"recentes"`
}

// Store is the slice of the oficio repository the dashboard reads.
type Store interface {
	Recent(ctx context.Context, limit int) ([]entity.Oficio, error)
	CountSince(ctx context.Context, since time.Time, status string) (int, error)
	CountByDay(ctx context.Context, since time.Time) ([]repository.DailyCount, error)
}

// Service computes dashboard statistics.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new dashboard service
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// NormalizePeriod parses the periodo query parameter, falling back to
// the default window on anything unsupported.
func NormalizePeriod(days int) int {
	if validPeriods[days] {
		return days
	}
	return DefaultPeriodDays
}

// Stats computes the KPI counters, the gap-filled daily series and the
// recent list for the given window.
func (s *Service) Stats(ctx context.Context, periodDays int) (*Stats, error) {
	periodDays = NormalizePeriod(periodDays)
	now := s.now().UTC()
	since := now.AddDate(0, 0, -periodDays)

	total, err := s.store.CountSince(ctx, since, "")
	if err != nil {
		return nil, err
	}
	emitidos, err := s.store.CountSince(ctx, since, entity.StatusEmitido)
	if err != nil {
		return nil, err
	}
	rascunhos, err := s.store.CountSince(ctx, since, entity.StatusRascunho)
	if err != nil {
		return nil, err
	}
	cancelados, err := s.store.CountSince(ctx, since, entity.StatusCancelado)
	if err != nil {
		return nil, err
	}

	raw, err := s.store.CountByDay(ctx, since)
	if err != nil {
		return nil, err
	}

	recentes, err := s.store.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		PeriodoDias: periodDays,
		Total:       total,
		Emitidos:    emitidos,
		Rascunhos:   rascunhos,
		Cancelados:  cancelados,
		Serie:       fillSeries(raw, since, now),
		Recentes:    recentes,
	}

	s.logger.Info("dashboard stats computed",
		zap.Int("periodo_dias", periodDays),
		zap.Int("total", total))
	return stats, nil
}

// fillSeries expands the sparse per-day counts into one point per
// calendar day between since and now, zero-filling the gaps.
func fillSeries(raw []repository.DailyCount, since, now time.Time) []repository.DailyCount {
	byDay := make(map[string]int, len(raw))
	for _, dc := range raw {
		byDay[dc.Dia] = dc.Total
	}

	var series []repository.DailyCount
	for d := since; !d.After(now); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		series = append(series, repository.DailyCount{Dia: day, Total: byDay[day]})
	}
	return series
}
