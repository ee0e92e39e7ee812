package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusSubmitted TransactionStatus = "SUBMITTED"
	TransactionStatusScheduled TransactionStatus = "SCHEDULED"
	TransactionStatusReady     TransactionStatus = "READY"
	TransactionStatusClaimed   TransactionStatus = "CLAIMED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusClaimed || s == TransactionStatusRejected
}

type Transaction struct {
	ID          int32 `json:"id"`
	RequesterID int32 `json:"requester_id"`
	// DepartmentID is copied from the requester at intake time and is the
	// value staff/assistant scopes are checked against.
	DepartmentID     int32             `json:"department_id"`
	TotalAmountCents int32             `json:"total_amount_cents"`
	Status           TransactionStatus `json:"status"`
	PaymentDate      *time.Time        `json:"payment_date,omitempty"`
	// PaymentAttachment references an externally stored proof-of-payment.
	PaymentAttachment string     `json:"payment_attachment,omitempty"`
	ScheduledFor      *time.Time `json:"scheduled_for,omitempty"`
	ScheduledAt       *time.Time `json:"scheduled_at,omitempty"`
	TaskDoneAt        *time.Time `json:"task_done_at,omitempty"`
	ClaimedAt         *time.Time `json:"claimed_at,omitempty"`
	ClaimRemarks      string     `json:"claim_remarks,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`
	RejectRemarks     string     `json:"reject_remarks,omitempty"`
	CreatedOn         time.Time  `json:"created_on"`
	UpdatedOn         time.Time  `json:"updated_on"`

	LineItems []LineItem `json:"line_items,omitempty"`
}

type LineItemKind string

const (
	LineItemKindCredential LineItemKind = "CREDENTIAL"
	LineItemKindPackage    LineItemKind = "PACKAGE"
)

// LineItem is one cart entry attached to a transaction. Name and unit price
// are snapshots taken at intake; later catalog edits never touch them.
type LineItem struct {
	ID             int32        `json:"id"`
	TransactionID  int32        `json:"transaction_id"`
	Kind           LineItemKind `json:"kind"`
	CredentialID   *int32       `json:"credential_id,omitempty"`
	PackageID      *int32       `json:"package_id,omitempty"`
	Name           string       `json:"name"`
	UnitPriceCents int32        `json:"unit_price_cents"`
	Quantity       int32        `json:"quantity"`
	AmountCents    int32        `json:"amount_cents"`
}
