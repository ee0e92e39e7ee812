package repository

import (
	"context"
	"time"

	"registrar-portal-backend/internal/domain"
)

type ActorRepository interface {
	Create(ctx context.Context, actor *domain.Actor) error
	GetByID(ctx context.Context, id int32) (*domain.Actor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Actor, error)
	Update(ctx context.Context, actor *domain.Actor) error
	ListByRole(ctx context.Context, role domain.ActorRole, page, pageSize int32) ([]domain.Actor, int32, error)
}

type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int32) (*domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	SoftDelete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Department, error)
}

type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	GetByID(ctx context.Context, id int32) (*domain.Credential, error)
	Update(ctx context.Context, cred *domain.Credential) error
	SoftDelete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Credential, error)
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	GetByID(ctx context.Context, id int32) (*domain.Package, error)
	Update(ctx context.Context, pkg *domain.Package) error
	SoftDelete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Package, error)
}

// TransactionFilter narrows List results. Zero values mean "no filter".
type TransactionFilter struct {
	Status       domain.TransactionStatus
	DepartmentID int32
	RequesterID  int32
}

type TransactionRepository interface {
	// CreateWithItems persists the transaction, its line items, and the
	// intake audit entry in one database transaction.
	CreateWithItems(ctx context.Context, txn *domain.Transaction, entry *domain.AuditLogEntry) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error)
	// Transition applies one workflow event with a compare-and-swap on
	// status: the UPDATE only matches rows still in one of the from
	// statuses, writes only the columns ev owns, and appends the audit
	// entry in the same database transaction. Columns other events own
	// are left untouched, so a concurrently recorded payment survives a
	// transition committed from an older read. A zero-row update aborts
	// everything with domain.ErrInvalidTransition.
	Transition(ctx context.Context, txn *domain.Transaction, ev domain.TransitionEvent, from []domain.TransactionStatus, entry *domain.AuditLogEntry) error
}

// AuditLogFilter narrows List results. Zero values mean "no filter".
type AuditLogFilter struct {
	ActorRole    domain.ActorRole
	ActorID      int32
	ActivityType domain.ActivityType
}

type AuditLogRepository interface {
	// Append writes one entry outside any workflow transaction. Workflow
	// transitions write their entries through TransactionRepository instead
	// so the log row commits or aborts with the mutation.
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	List(ctx context.Context, filter AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error)
}

type ReportRepository interface {
	CountTransactions(ctx context.Context, granularity domain.ReportGranularity, from, to time.Time) ([]domain.TransactionCount, error)
	CredentialTotals(ctx context.Context, from, to time.Time) ([]domain.CredentialTotal, error)
	CountByDepartment(ctx context.Context, from, to time.Time) ([]domain.DepartmentCount, error)
	Summary(ctx context.Context) (*domain.WorkflowSummary, error)
}
