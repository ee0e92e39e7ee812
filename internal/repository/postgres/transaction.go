package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/logger"
	"registrar-portal-backend/internal/repository"

	"github.com/lib/pq"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, requester_id, department_id, total_amount_cents, status,
       payment_date, COALESCE(payment_attachment, ''), scheduled_for, scheduled_at,
       task_done_at, claimed_at, COALESCE(claim_remarks, ''), rejected_at,
       COALESCE(reject_remarks, ''), created_on, updated_on`

func scanTransaction(row interface{ Scan(...interface{}) error }, t *domain.Transaction) error {
	return row.Scan(
		&t.ID, &t.RequesterID, &t.DepartmentID, &t.TotalAmountCents, &t.Status,
		&t.PaymentDate, &t.PaymentAttachment, &t.ScheduledFor, &t.ScheduledAt,
		&t.TaskDoneAt, &t.ClaimedAt, &t.ClaimRemarks, &t.RejectedAt,
		&t.RejectRemarks, &t.CreatedOn, &t.UpdatedOn,
	)
}

func (r *transactionRepository) CreateWithItems(ctx context.Context, txn *domain.Transaction, entry *domain.AuditLogEntry) error {
	logger.EnterMethod("transactionRepository.CreateWithItems", "requesterID", txn.RequesterID, "items", len(txn.LineItems))

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.CreateWithItems", err)
		return storeErr(err)
	}
	defer dbTx.Rollback()

	now := time.Now()
	query := `INSERT INTO transactions (requester_id, department_id, total_amount_cents, status, payment_attachment, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on, updated_on`
	err = dbTx.QueryRowContext(ctx, query,
		txn.RequesterID, txn.DepartmentID, txn.TotalAmountCents, txn.Status,
		nullString(txn.PaymentAttachment), now, now,
	).Scan(&txn.ID, &txn.CreatedOn, &txn.UpdatedOn)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.CreateWithItems", err)
		return storeErr(err)
	}

	itemQuery := `INSERT INTO transaction_line_items (transaction_id, kind, credential_id, package_id, name, unit_price_cents, quantity, amount_cents)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	for i := range txn.LineItems {
		item := &txn.LineItems[i]
		item.TransactionID = txn.ID
		err = dbTx.QueryRowContext(ctx, itemQuery,
			item.TransactionID, item.Kind, item.CredentialID, item.PackageID,
			item.Name, item.UnitPriceCents, item.Quantity, item.AmountCents,
		).Scan(&item.ID)
		if err != nil {
			logger.ExitMethodWithError("transactionRepository.CreateWithItems", err)
			return storeErr(err)
		}
	}

	if err := appendAuditLogTx(ctx, dbTx, entry); err != nil {
		logger.ExitMethodWithError("transactionRepository.CreateWithItems", err)
		return storeErr(err)
	}

	if err := dbTx.Commit(); err != nil {
		logger.ExitMethodWithError("transactionRepository.CreateWithItems", err)
		return storeErr(err)
	}

	logger.ExitMethod("transactionRepository.CreateWithItems", "transactionID", txn.ID)
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	txn := &domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	if err := scanTransaction(r.db.QueryRowContext(ctx, query, id), txn); err != nil {
		return nil, storeErr(err)
	}

	itemQuery := `SELECT id, transaction_id, kind, credential_id, package_id, name, unit_price_cents, quantity, amount_cents
	              FROM transaction_line_items WHERE transaction_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.Kind, &item.CredentialID, &item.PackageID,
			&item.Name, &item.UnitPriceCents, &item.Quantity, &item.AmountCents); err != nil {
			return nil, storeErr(err)
		}
		txn.LineItems = append(txn.LineItems, item)
	}
	return txn, nil
}

func (r *transactionRepository) List(ctx context.Context, filter repository.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.DepartmentID > 0 {
		query += fmt.Sprintf(" AND department_id = $%d", argIdx)
		args = append(args, filter.DepartmentID)
		argIdx++
	}
	if filter.RequesterID > 0 {
		query += fmt.Sprintf(" AND requester_id = $%d", argIdx)
		args = append(args, filter.RequesterID)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, storeErr(err)
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, 0, storeErr(err)
		}
		txns = append(txns, t)
	}
	return txns, count, nil
}

func (r *transactionRepository) Transition(ctx context.Context, txn *domain.Transaction, ev domain.TransitionEvent, from []domain.TransactionStatus, entry *domain.AuditLogEntry) error {
	logger.EnterMethod("transactionRepository.Transition", "transactionID", txn.ID, "event", ev, "status", txn.Status)

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Transition", err, "transactionID", txn.ID)
		return storeErr(err)
	}
	defer dbTx.Rollback()

	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}

	// Each event writes only the columns it owns. A wider SET list would
	// let a transition committed from an older read null out a payment
	// recorded in between, since RecordPayment keeps the status unchanged
	// and the status predicate alone cannot catch it.
	assigns := []string{"status = $1"}
	args := []interface{}{txn.Status}
	set := func(column string, value interface{}) {
		args = append(args, value)
		assigns = append(assigns, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	switch ev {
	case domain.EventRecordPayment:
		set("payment_date", txn.PaymentDate)
		set("payment_attachment", nullString(txn.PaymentAttachment))
	case domain.EventSchedule:
		set("scheduled_for", txn.ScheduledFor)
		set("scheduled_at", txn.ScheduledAt)
	case domain.EventMarkReady:
		set("task_done_at", txn.TaskDoneAt)
	case domain.EventClaim:
		set("claimed_at", txn.ClaimedAt)
		set("claim_remarks", nullString(txn.ClaimRemarks))
	case domain.EventReject:
		set("rejected_at", txn.RejectedAt)
		set("reject_remarks", nullString(txn.RejectRemarks))
	}
	set("updated_on", time.Now())
	args = append(args, txn.ID, pq.Array(fromStrs))

	// The status predicate is the compare-and-swap: of two racing actors,
	// only one UPDATE matches a row.
	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d AND status = ANY($%d)",
		strings.Join(assigns, ", "), len(args)-1, len(args))
	res, err := dbTx.ExecContext(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Transition", err, "transactionID", txn.ID)
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Transition", err, "transactionID", txn.ID)
		return storeErr(err)
	}
	if affected == 0 {
		logger.Warn("Transition precondition failed", "transactionID", txn.ID, "wanted", fromStrs)
		return domain.ErrInvalidTransition
	}

	if err := appendAuditLogTx(ctx, dbTx, entry); err != nil {
		logger.ExitMethodWithError("transactionRepository.Transition", err, "transactionID", txn.ID)
		return storeErr(err)
	}

	if err := dbTx.Commit(); err != nil {
		logger.ExitMethodWithError("transactionRepository.Transition", err, "transactionID", txn.ID)
		return storeErr(err)
	}

	logger.ExitMethod("transactionRepository.Transition", "transactionID", txn.ID, "status", txn.Status)
	return nil
}
