package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

func TestWorkflowService_Schedule(t *testing.T) {
	ctx := context.Background()
	txnID := int32(42)
	scheduledFor := time.Now().Add(72 * time.Hour)

	staff := &domain.Actor{
		ID:              7,
		Role:            domain.ActorRoleStaff,
		DepartmentScope: []int32{3},
		Active:          true,
	}

	t.Run("Success", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID:           txnID,
			RequesterID:  100,
			DepartmentID: 3,
			Status:       domain.TransactionStatusSubmitted,
		}, nil)
		txnRepo.On("Transition", ctx, mock.AnythingOfType("*domain.Transaction"),
			domain.EventSchedule,
			[]domain.TransactionStatus{domain.TransactionStatusSubmitted},
			mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)
		actorRepo.On("GetByID", ctx, int32(100)).Return(&domain.Actor{
			ID: 100, Email: "student@test.edu", Name: "Student",
		}, nil)
		emailSvc.On("SendScheduleNotice", ctx, "student@test.edu", "Student", txnID, scheduledFor).Return(nil)

		err := svc.Schedule(ctx, staff, txnID, scheduledFor)
		assert.NoError(t, err)

		mutated := txnRepo.Calls[1].Arguments.Get(1).(*domain.Transaction)
		assert.Equal(t, domain.TransactionStatusScheduled, mutated.Status)
		assert.Equal(t, scheduledFor, *mutated.ScheduledFor)
		assert.NotNil(t, mutated.ScheduledAt)

		entry := txnRepo.Calls[1].Arguments.Get(4).(*domain.AuditLogEntry)
		assert.Equal(t, staff.ID, entry.ActorID)
		assert.Equal(t, domain.ActorRoleStaff, entry.ActorRole)
		assert.Equal(t, domain.ActivityTypeSchedule, entry.ActivityType)

		emailSvc.AssertNumberOfCalls(t, "SendScheduleNotice", 1)
	})

	t.Run("Out Of Scope Department", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID:           txnID,
			DepartmentID: 9, // staff is scoped to department 3
			Status:       domain.TransactionStatusSubmitted,
		}, nil)

		err := svc.Schedule(ctx, staff, txnID, scheduledFor)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		txnRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Scheduled", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID:           txnID,
			DepartmentID: 3,
			Status:       domain.TransactionStatusScheduled,
		}, nil)

		err := svc.Schedule(ctx, staff, txnID, scheduledFor)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Race Lost To Concurrent Transition", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		// The precheck read sees SUBMITTED but the guarded UPDATE loses the
		// race and matches no rows.
		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID:           txnID,
			RequesterID:  100,
			DepartmentID: 3,
			Status:       domain.TransactionStatusSubmitted,
		}, nil)
		txnRepo.On("Transition", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.ErrInvalidTransition)

		err := svc.Schedule(ctx, staff, txnID, scheduledFor)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		emailSvc.AssertNotCalled(t, "SendScheduleNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorkflowService_MarkReady(t *testing.T) {
	ctx := context.Background()
	txnID := int32(5)

	t.Run("Staff Cannot Mark Ready", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		staff := &domain.Actor{ID: 7, Role: domain.ActorRoleStaff, DepartmentScope: []int32{3}, Active: true}
		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, DepartmentID: 3, Status: domain.TransactionStatusScheduled,
		}, nil)

		err := svc.MarkReady(ctx, staff, txnID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Releasing Assistant Succeeds", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		assistant := &domain.Actor{
			ID:              8,
			Role:            domain.ActorRoleStudentAssistant,
			DepartmentScope: []int32{3},
			CanRelease:      true,
			Active:          true,
		}
		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, DepartmentID: 3, Status: domain.TransactionStatusScheduled,
		}, nil)
		txnRepo.On("Transition", ctx, mock.AnythingOfType("*domain.Transaction"),
			domain.EventMarkReady,
			[]domain.TransactionStatus{domain.TransactionStatusScheduled},
			mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

		err := svc.MarkReady(ctx, assistant, txnID)
		assert.NoError(t, err)

		mutated := txnRepo.Calls[1].Arguments.Get(1).(*domain.Transaction)
		assert.Equal(t, domain.TransactionStatusReady, mutated.Status)
		assert.NotNil(t, mutated.TaskDoneAt)
	})

	t.Run("Assistant Without Release Capability", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		assistant := &domain.Actor{
			ID:              8,
			Role:            domain.ActorRoleStudentAssistant,
			DepartmentScope: []int32{3},
			CanSchedule:     true,
			Active:          true,
		}
		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, DepartmentID: 3, Status: domain.TransactionStatusScheduled,
		}, nil)

		err := svc.MarkReady(ctx, assistant, txnID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestWorkflowService_Claim(t *testing.T) {
	ctx := context.Background()
	txnID := int32(11)
	staff := &domain.Actor{ID: 7, Role: domain.ActorRoleStaff, DepartmentScope: []int32{3}, Active: true}

	t.Run("Claim From Scheduled Skips Ready", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, RequesterID: 100, DepartmentID: 3, Status: domain.TransactionStatusScheduled,
		}, nil)
		txnRepo.On("Transition", ctx, mock.AnythingOfType("*domain.Transaction"),
			domain.EventClaim,
			[]domain.TransactionStatus{domain.TransactionStatusScheduled, domain.TransactionStatusReady},
			mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)
		actorRepo.On("GetByID", ctx, int32(100)).Return(&domain.Actor{
			ID: 100, Email: "student@test.edu", Name: "Student",
		}, nil)
		emailSvc.On("SendClaimReceipt", ctx, "student@test.edu", "Student", txnID).Return(nil)

		err := svc.Claim(ctx, staff, txnID, "picked up in person")
		assert.NoError(t, err)

		mutated := txnRepo.Calls[1].Arguments.Get(1).(*domain.Transaction)
		assert.Equal(t, domain.TransactionStatusClaimed, mutated.Status)
		assert.Equal(t, "picked up in person", mutated.ClaimRemarks)
		assert.NotNil(t, mutated.ClaimedAt)
	})

	t.Run("Email Failure Does Not Fail Claim", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, RequesterID: 100, DepartmentID: 3, Status: domain.TransactionStatusReady,
		}, nil)
		txnRepo.On("Transition", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		actorRepo.On("GetByID", ctx, int32(100)).Return(&domain.Actor{
			ID: 100, Email: "student@test.edu", Name: "Student",
		}, nil)
		emailSvc.On("SendClaimReceipt", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		err := svc.Claim(ctx, staff, txnID, "")
		assert.NoError(t, err)
	})

	t.Run("Claim From Terminal Status", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, DepartmentID: 3, Status: domain.TransactionStatusClaimed,
		}, nil)

		err := svc.Claim(ctx, staff, txnID, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestWorkflowService_Reject(t *testing.T) {
	ctx := context.Background()
	txnID := int32(13)
	staff := &domain.Actor{ID: 7, Role: domain.ActorRoleStaff, DepartmentScope: []int32{3}, Active: true}

	t.Run("Reject From Ready", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, RequesterID: 100, DepartmentID: 3, Status: domain.TransactionStatusReady,
		}, nil)
		txnRepo.On("Transition", ctx, mock.AnythingOfType("*domain.Transaction"),
			domain.EventReject,
			[]domain.TransactionStatus{
				domain.TransactionStatusSubmitted,
				domain.TransactionStatusScheduled,
				domain.TransactionStatusReady,
			},
			mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)
		actorRepo.On("GetByID", ctx, int32(100)).Return(&domain.Actor{
			ID: 100, Email: "student@test.edu", Name: "Student",
		}, nil)
		emailSvc.On("SendRejectionNotice", ctx, "student@test.edu", "Student", txnID, "unpaid balance").Return(nil)

		err := svc.Reject(ctx, staff, txnID, "unpaid balance")
		assert.NoError(t, err)

		mutated := txnRepo.Calls[1].Arguments.Get(1).(*domain.Transaction)
		assert.Equal(t, domain.TransactionStatusRejected, mutated.Status)
		assert.Equal(t, "unpaid balance", mutated.RejectRemarks)
	})

	t.Run("Reject From Rejected", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, DepartmentID: 3, Status: domain.TransactionStatusRejected,
		}, nil)

		err := svc.Reject(ctx, staff, txnID, "again")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestWorkflowService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	txnID := int32(21)
	staff := &domain.Actor{ID: 7, Role: domain.ActorRoleStaff, DepartmentScope: []int32{3}, Active: true}
	paymentDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Status Unchanged", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, DepartmentID: 3, Status: domain.TransactionStatusSubmitted,
		}, nil)
		txnRepo.On("Transition", ctx, mock.AnythingOfType("*domain.Transaction"),
			domain.EventRecordPayment,
			[]domain.TransactionStatus{domain.TransactionStatusSubmitted},
			mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

		err := svc.RecordPayment(ctx, staff, txnID, paymentDate, "receipt-81.pdf")
		assert.NoError(t, err)

		mutated := txnRepo.Calls[1].Arguments.Get(1).(*domain.Transaction)
		assert.Equal(t, domain.TransactionStatusSubmitted, mutated.Status)
		assert.Equal(t, paymentDate, *mutated.PaymentDate)
		assert.Equal(t, "receipt-81.pdf", mutated.PaymentAttachment)
	})

	t.Run("Rejected After Scheduling", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, DepartmentID: 3, Status: domain.TransactionStatusScheduled,
		}, nil)

		err := svc.RecordPayment(ctx, staff, txnID, paymentDate, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestWorkflowService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Student Pinned To Own Transactions", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		student := &domain.Actor{ID: 100, Role: domain.ActorRoleStudent, Active: true}
		expected := repository.TransactionFilter{RequesterID: 100}
		txnRepo.On("List", ctx, expected, int32(1), int32(25)).
			Return([]domain.Transaction{}, int32(0), nil)

		// A student asking for someone else's transactions still only gets
		// their own.
		_, _, err := svc.List(ctx, student, repository.TransactionFilter{RequesterID: 999}, 1, 25)
		assert.NoError(t, err)
		txnRepo.AssertCalled(t, "List", ctx, expected, int32(1), int32(25))
	})

	t.Run("Staff Single Scope Defaults Department", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		staff := &domain.Actor{ID: 7, Role: domain.ActorRoleStaff, DepartmentScope: []int32{3}, Active: true}
		expected := repository.TransactionFilter{DepartmentID: 3}
		txnRepo.On("List", ctx, expected, int32(1), int32(25)).
			Return([]domain.Transaction{}, int32(0), nil)

		_, _, err := svc.List(ctx, staff, repository.TransactionFilter{}, 1, 25)
		assert.NoError(t, err)
	})

	t.Run("Staff Requesting Foreign Department", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		staff := &domain.Actor{ID: 7, Role: domain.ActorRoleStaff, DepartmentScope: []int32{3}, Active: true}
		_, _, err := svc.List(ctx, staff, repository.TransactionFilter{DepartmentID: 9}, 1, 25)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Admin Unrestricted", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		admin := &domain.Actor{ID: 1, Role: domain.ActorRoleAdmin, Active: true}
		filter := repository.TransactionFilter{Status: domain.TransactionStatusReady}
		txnRepo.On("List", ctx, filter, int32(2), int32(50)).
			Return([]domain.Transaction{}, int32(0), nil)

		_, _, err := svc.List(ctx, admin, filter, 2, 50)
		assert.NoError(t, err)
	})
}

func TestWorkflowService_Get(t *testing.T) {
	ctx := context.Background()
	txnID := int32(33)

	t.Run("Student Reads Own", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		student := &domain.Actor{ID: 100, Role: domain.ActorRoleStudent, Active: true}
		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, RequesterID: 100, DepartmentID: 3,
		}, nil)

		txn, err := svc.Get(ctx, student, txnID)
		assert.NoError(t, err)
		assert.Equal(t, txnID, txn.ID)
	})

	t.Run("Student Reads Someone Else's", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		actorRepo := new(MockActorRepo)
		emailSvc := new(MockEmailService)
		svc := NewWorkflowService(txnRepo, actorRepo, emailSvc)

		student := &domain.Actor{ID: 100, Role: domain.ActorRoleStudent, Active: true}
		txnRepo.On("GetByID", ctx, txnID).Return(&domain.Transaction{
			ID: txnID, RequesterID: 200, DepartmentID: 3,
		}, nil)

		_, err := svc.Get(ctx, student, txnID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
