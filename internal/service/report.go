package service

import (
	"context"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// clampRange defaults an open range to the trailing year and makes `to`
// exclusive of nothing later than tomorrow.
func clampRange(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	}
	if from.IsZero() {
		from = to.AddDate(-1, 0, 0)
	}
	return from, to
}

func (s *reportService) TransactionCounts(ctx context.Context, granularity domain.ReportGranularity, from, to time.Time) ([]domain.TransactionCount, error) {
	if granularity == "" {
		granularity = domain.GranularityDaily
	}
	from, to = clampRange(from, to)
	return s.reportRepo.CountTransactions(ctx, granularity, from, to)
}

func (s *reportService) CredentialTotals(ctx context.Context, from, to time.Time) ([]domain.CredentialTotal, error) {
	from, to = clampRange(from, to)
	return s.reportRepo.CredentialTotals(ctx, from, to)
}

func (s *reportService) DepartmentCounts(ctx context.Context, from, to time.Time) ([]domain.DepartmentCount, error) {
	from, to = clampRange(from, to)
	return s.reportRepo.CountByDepartment(ctx, from, to)
}

func (s *reportService) Summary(ctx context.Context) (*domain.WorkflowSummary, error) {
	return s.reportRepo.Summary(ctx)
}
