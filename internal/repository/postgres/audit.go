package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

// appendAuditLogTx writes one entry inside an open database transaction so
// the log row commits or aborts with the workflow mutation it records.
func appendAuditLogTx(ctx context.Context, dbTx *sql.Tx, entry *domain.AuditLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	query := `INSERT INTO audit_logs (actor_id, actor_role, activity, activity_type, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return dbTx.QueryRowContext(ctx, query,
		entry.ActorID, entry.ActorRole, entry.Activity, entry.ActivityType, entry.CreatedAt,
	).Scan(&entry.ID)
}

func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	query := `INSERT INTO audit_logs (actor_id, actor_role, activity, activity_type, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		entry.ActorID, entry.ActorRole, entry.Activity, entry.ActivityType, entry.CreatedAt,
	).Scan(&entry.ID)
	return storeErr(err)
}

func (r *auditLogRepository) List(ctx context.Context, filter repository.AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, actor_id, actor_role, activity, activity_type, created_at FROM audit_logs WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if filter.ActorRole != "" {
		query += fmt.Sprintf(" AND actor_role = $%d", argIdx)
		args = append(args, filter.ActorRole)
		argIdx++
	}
	if filter.ActorID > 0 {
		query += fmt.Sprintf(" AND actor_id = $%d", argIdx)
		args = append(args, filter.ActorID)
		argIdx++
	}
	if filter.ActivityType != "" {
		query += fmt.Sprintf(" AND activity_type = $%d", argIdx)
		args = append(args, filter.ActivityType)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, storeErr(err)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var e domain.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorRole, &e.Activity, &e.ActivityType, &e.CreatedAt); err != nil {
			return nil, 0, storeErr(err)
		}
		entries = append(entries, e)
	}
	return entries, count, nil
}
