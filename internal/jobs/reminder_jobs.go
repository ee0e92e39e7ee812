package jobs

import (
	"context"
	"time"

	"registrar-portal-backend/internal/logger"
)

// SendUnclaimedReminders emails requesters whose credentials have been
// sitting in READY longer than the configured number of days.
func (jr *JobRunner) SendUnclaimedReminders() {
	jr.runWithRecovery("SendUnclaimedReminders", func() {
		ctx := context.Background()

		query := `
			SELECT t.id, t.task_done_at, a.email, a.name
			FROM transactions t
			JOIN actors a ON t.requester_id = a.id
			WHERE t.status = 'READY'
			  AND t.task_done_at IS NOT NULL
			  AND t.task_done_at < $1
		`

		cutoff := time.Now().AddDate(0, 0, -jr.config.Reminders.UnclaimedAfterDays)
		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to query unclaimed transactions", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				transactionID int32
				readySince    time.Time
				email         string
				name          string
			)

			if err := rows.Scan(&transactionID, &readySince, &email, &name); err != nil {
				logger.Error("Failed to scan unclaimed transaction", "error", err)
				continue
			}

			if err := jr.services.Email.SendUnclaimedReminder(ctx, email, name, transactionID, readySince); err != nil {
				logger.Error("Failed to send unclaimed reminder",
					"transaction_id", transactionID,
					"email", email,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent unclaimed reminder",
				"transaction_id", transactionID,
				"email", email)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating unclaimed transactions", "error", err)
			return
		}

		logger.Info("Unclaimed reminders sent", "count", count)
	})
}

// ReportStaleSubmissions mails the registrar admin a list of submitted
// requests that have not been scheduled within the configured window.
func (jr *JobRunner) ReportStaleSubmissions() {
	jr.runWithRecovery("ReportStaleSubmissions", func() {
		ctx := context.Background()

		if jr.config.Reminders.AdminEmail == "" {
			logger.Warn("No admin email configured, skipping stale submissions report")
			return
		}

		query := `
			SELECT id
			FROM transactions
			WHERE status = 'SUBMITTED'
			  AND created_on < $1
			ORDER BY created_on ASC
		`

		cutoff := time.Now().AddDate(0, 0, -jr.config.Reminders.StaleSubmittedAfterDays)
		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to query stale submissions", "error", err)
			return
		}
		defer rows.Close()

		var staleIDs []int32
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan stale submission", "error", err)
				continue
			}
			staleIDs = append(staleIDs, id)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating stale submissions", "error", err)
			return
		}

		if len(staleIDs) == 0 {
			logger.Info("No stale submissions found")
			return
		}

		if err := jr.services.Email.SendStaleSubmissionsReport(ctx, jr.config.Reminders.AdminEmail, staleIDs); err != nil {
			logger.Error("Failed to send stale submissions report",
				"admin_email", jr.config.Reminders.AdminEmail,
				"count", len(staleIDs),
				"error", err)
			return
		}

		logger.Info("Stale submissions report sent",
			"admin_email", jr.config.Reminders.AdminEmail,
			"count", len(staleIDs))
	})
}
