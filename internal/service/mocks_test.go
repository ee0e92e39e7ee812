package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) CreateWithItems(ctx context.Context, txn *domain.Transaction, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, txn, entry)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) List(ctx context.Context, filter repository.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) Transition(ctx context.Context, txn *domain.Transaction, ev domain.TransitionEvent, from []domain.TransactionStatus, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, txn, ev, from, entry)
	return args.Error(0)
}

// MockActorRepo
type MockActorRepo struct {
	mock.Mock
}

func (m *MockActorRepo) Create(ctx context.Context, actor *domain.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}
func (m *MockActorRepo) GetByID(ctx context.Context, id int32) (*domain.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}
func (m *MockActorRepo) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}
func (m *MockActorRepo) Update(ctx context.Context, actor *domain.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}
func (m *MockActorRepo) ListByRole(ctx context.Context, role domain.ActorRole, page, pageSize int32) ([]domain.Actor, int32, error) {
	args := m.Called(ctx, role, page, pageSize)
	return args.Get(0).([]domain.Actor), args.Get(1).(int32), args.Error(2)
}

// MockDepartmentRepo
type MockDepartmentRepo struct {
	mock.Mock
}

func (m *MockDepartmentRepo) Create(ctx context.Context, dept *domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}
func (m *MockDepartmentRepo) GetByID(ctx context.Context, id int32) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}
func (m *MockDepartmentRepo) Update(ctx context.Context, dept *domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}
func (m *MockDepartmentRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDepartmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

// MockCredentialRepo
type MockCredentialRepo struct {
	mock.Mock
}

func (m *MockCredentialRepo) Create(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}
func (m *MockCredentialRepo) GetByID(ctx context.Context, id int32) (*domain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
func (m *MockCredentialRepo) Update(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}
func (m *MockCredentialRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCredentialRepo) List(ctx context.Context) ([]domain.Credential, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Credential), args.Error(1)
}

// MockPackageRepo
type MockPackageRepo struct {
	mock.Mock
}

func (m *MockPackageRepo) Create(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}
func (m *MockPackageRepo) GetByID(ctx context.Context, id int32) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}
func (m *MockPackageRepo) Update(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}
func (m *MockPackageRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPackageRepo) List(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Package), args.Error(1)
}

// MockAuditLogRepo
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditLogRepo) List(ctx context.Context, filter repository.AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.AuditLogEntry), args.Get(1).(int32), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendScheduleNotice(ctx context.Context, email, name string, transactionID int32, scheduledFor time.Time) error {
	args := m.Called(ctx, email, name, transactionID, scheduledFor)
	return args.Error(0)
}
func (m *MockEmailService) SendClaimReceipt(ctx context.Context, email, name string, transactionID int32) error {
	args := m.Called(ctx, email, name, transactionID)
	return args.Error(0)
}
func (m *MockEmailService) SendRejectionNotice(ctx context.Context, email, name string, transactionID int32, remarks string) error {
	args := m.Called(ctx, email, name, transactionID, remarks)
	return args.Error(0)
}
func (m *MockEmailService) SendUnclaimedReminder(ctx context.Context, email, name string, transactionID int32, readySince time.Time) error {
	args := m.Called(ctx, email, name, transactionID, readySince)
	return args.Error(0)
}
func (m *MockEmailService) SendStaleSubmissionsReport(ctx context.Context, adminEmail string, transactionIDs []int32) error {
	args := m.Called(ctx, adminEmail, transactionIDs)
	return args.Error(0)
}
