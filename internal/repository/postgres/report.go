package postgres

import (
	"context"
	"database/sql"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func bucketFormat(granularity domain.ReportGranularity) string {
	switch granularity {
	case domain.GranularityMonthly:
		return "YYYY-MM"
	case domain.GranularityYearly:
		return "YYYY"
	default:
		return "YYYY-MM-DD"
	}
}

func (r *reportRepository) CountTransactions(ctx context.Context, granularity domain.ReportGranularity, from, to time.Time) ([]domain.TransactionCount, error) {
	query := `SELECT to_char(created_on, $1) AS bucket, count(*)
	          FROM transactions
	          WHERE created_on >= $2 AND created_on < $3
	          GROUP BY bucket ORDER BY bucket`
	rows, err := r.db.QueryContext(ctx, query, bucketFormat(granularity), from, to)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var counts []domain.TransactionCount
	for rows.Next() {
		var c domain.TransactionCount
		if err := rows.Scan(&c.Bucket, &c.Count); err != nil {
			return nil, storeErr(err)
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (r *reportRepository) CredentialTotals(ctx context.Context, from, to time.Time) ([]domain.CredentialTotal, error) {
	query := `SELECT li.credential_id, li.name, sum(li.quantity), sum(li.amount_cents)
	          FROM transaction_line_items li
	          JOIN transactions t ON t.id = li.transaction_id
	          WHERE li.credential_id IS NOT NULL
	            AND t.created_on >= $1 AND t.created_on < $2
	          GROUP BY li.credential_id, li.name
	          ORDER BY sum(li.quantity) DESC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var totals []domain.CredentialTotal
	for rows.Next() {
		var t domain.CredentialTotal
		if err := rows.Scan(&t.CredentialID, &t.Name, &t.Quantity, &t.AmountCents); err != nil {
			return nil, storeErr(err)
		}
		totals = append(totals, t)
	}
	return totals, nil
}

func (r *reportRepository) CountByDepartment(ctx context.Context, from, to time.Time) ([]domain.DepartmentCount, error) {
	query := `SELECT t.department_id, d.name, count(*)
	          FROM transactions t
	          JOIN departments d ON d.id = t.department_id
	          WHERE t.created_on >= $1 AND t.created_on < $2
	          GROUP BY t.department_id, d.name
	          ORDER BY count(*) DESC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var counts []domain.DepartmentCount
	for rows.Next() {
		var c domain.DepartmentCount
		if err := rows.Scan(&c.DepartmentID, &c.Name, &c.Count); err != nil {
			return nil, storeErr(err)
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (r *reportRepository) Summary(ctx context.Context) (*domain.WorkflowSummary, error) {
	summary := &domain.WorkflowSummary{
		StatusCount: make(map[domain.TransactionStatus]int32),
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM transactions GROUP BY status`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.TransactionStatus
		var count int32
		if err := rows.Scan(&status, &count); err != nil {
			return nil, storeErr(err)
		}
		summary.StatusCount[status] = count
		summary.TotalCount += count
	}

	err = r.db.QueryRowContext(ctx, `SELECT COALESCE(sum(total_amount_cents), 0) FROM transactions`).Scan(&summary.TotalAmountCents)
	if err != nil {
		return nil, storeErr(err)
	}
	return summary, nil
}
