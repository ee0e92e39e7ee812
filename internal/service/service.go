package service

import (
	"context"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

// LineItemRequest is one cart entry in a submission. Exactly one of
// CredentialID/PackageID must be set.
type LineItemRequest struct {
	CredentialID *int32 `json:"credential_id,omitempty"`
	PackageID    *int32 `json:"package_id,omitempty"`
	Quantity     int32  `json:"quantity"`
}

type IntakeService interface {
	Submit(ctx context.Context, requesterID int32, items []LineItemRequest) (*domain.Transaction, error)
}

type WorkflowService interface {
	RecordPayment(ctx context.Context, actor *domain.Actor, transactionID int32, paymentDate time.Time, attachmentName string) error
	Schedule(ctx context.Context, actor *domain.Actor, transactionID int32, scheduledFor time.Time) error
	MarkReady(ctx context.Context, actor *domain.Actor, transactionID int32) error
	Claim(ctx context.Context, actor *domain.Actor, transactionID int32, remarks string) error
	Reject(ctx context.Context, actor *domain.Actor, transactionID int32, remarks string) error
	Get(ctx context.Context, actor *domain.Actor, transactionID int32) (*domain.Transaction, error)
	List(ctx context.Context, actor *domain.Actor, filter repository.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error)
}

type CatalogService interface {
	CreateCredential(ctx context.Context, actor *domain.Actor, cred *domain.Credential) error
	UpdateCredential(ctx context.Context, actor *domain.Actor, cred *domain.Credential) error
	DeleteCredential(ctx context.Context, actor *domain.Actor, id int32) error
	ListCredentials(ctx context.Context) ([]domain.Credential, error)

	CreatePackage(ctx context.Context, actor *domain.Actor, pkg *domain.Package) error
	UpdatePackage(ctx context.Context, actor *domain.Actor, pkg *domain.Package) error
	DeletePackage(ctx context.Context, actor *domain.Actor, id int32) error
	ListPackages(ctx context.Context) ([]domain.Package, error)

	CreateDepartment(ctx context.Context, actor *domain.Actor, dept *domain.Department) error
	UpdateDepartment(ctx context.Context, actor *domain.Actor, dept *domain.Department) error
	DeleteDepartment(ctx context.Context, actor *domain.Actor, id int32) error
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	CreateActor(ctx context.Context, actor *domain.Actor, newActor *domain.Actor, password string) error
	UpdateActor(ctx context.Context, actor *domain.Actor, target *domain.Actor) error
	ListActors(ctx context.Context, actor *domain.Actor, role domain.ActorRole, page, pageSize int32) ([]domain.Actor, int32, error)
}

type AuditService interface {
	List(ctx context.Context, actor *domain.Actor, filter repository.AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error)
}

type ReportService interface {
	TransactionCounts(ctx context.Context, granularity domain.ReportGranularity, from, to time.Time) ([]domain.TransactionCount, error)
	CredentialTotals(ctx context.Context, from, to time.Time) ([]domain.CredentialTotal, error)
	DepartmentCounts(ctx context.Context, from, to time.Time) ([]domain.DepartmentCount, error)
	Summary(ctx context.Context) (*domain.WorkflowSummary, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Actor, error)
}

type EmailService interface {
	SendScheduleNotice(ctx context.Context, email, name string, transactionID int32, scheduledFor time.Time) error
	SendClaimReceipt(ctx context.Context, email, name string, transactionID int32) error
	SendRejectionNotice(ctx context.Context, email, name string, transactionID int32, remarks string) error
	SendUnclaimedReminder(ctx context.Context, email, name string, transactionID int32, readySince time.Time) error
	SendStaleSubmissionsReport(ctx context.Context, adminEmail string, transactionIDs []int32) error
}
