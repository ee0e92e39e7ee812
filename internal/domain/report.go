package domain

// ReportGranularity selects the bucket size for transaction count rollups.
type ReportGranularity string

const (
	GranularityDaily   ReportGranularity = "DAILY"
	GranularityMonthly ReportGranularity = "MONTHLY"
	GranularityYearly  ReportGranularity = "YEARLY"
)

// TransactionCount is one bucket of the transaction rollup.
type TransactionCount struct {
	Bucket string `json:"bucket"` // e.g. "2026-08-29", "2026-08", "2026"
	Count  int32  `json:"count"`
}

// CredentialTotal aggregates requested quantity and amount per credential.
type CredentialTotal struct {
	CredentialID int32  `json:"credential_id"`
	Name         string `json:"name"`
	Quantity     int32  `json:"quantity"`
	AmountCents  int32  `json:"amount_cents"`
}

// DepartmentCount aggregates transactions per requester department.
type DepartmentCount struct {
	DepartmentID int32  `json:"department_id"`
	Name         string `json:"name"`
	Count        int32  `json:"count"`
}

// WorkflowSummary is the dashboard snapshot: per-status counts plus totals.
type WorkflowSummary struct {
	StatusCount      map[TransactionStatus]int32 `json:"status_count"`
	TotalCount       int32                       `json:"total_count"`
	TotalAmountCents int64                       `json:"total_amount_cents"`
}
