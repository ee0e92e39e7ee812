package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ActorRepository
	repository.DepartmentRepository
	repository.CredentialRepository
	repository.PackageRepository
	repository.TransactionRepository
	repository.AuditLogRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ActorRepository:       NewActorRepository(db),
		DepartmentRepository:  NewDepartmentRepository(db),
		CredentialRepository:  NewCredentialRepository(db),
		PackageRepository:     NewPackageRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		AuditLogRepository:    NewAuditLogRepository(db),
		ReportRepository:      NewReportRepository(db),
	}
}

// nullString converts an empty string to SQL NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// storeErr maps driver failures onto the domain error kinds: missing rows
// become ErrNotFound, everything else ErrStoreUnavailable.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
