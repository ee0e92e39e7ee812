package service

import (
	"context"
	"fmt"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/logger"
	"registrar-portal-backend/internal/repository"
)

type workflowService struct {
	txnRepo  repository.TransactionRepository
	actors   repository.ActorRepository
	emailSvc EmailService
}

func NewWorkflowService(
	txnRepo repository.TransactionRepository,
	actors repository.ActorRepository,
	emailSvc EmailService,
) WorkflowService {
	return &workflowService{
		txnRepo:  txnRepo,
		actors:   actors,
		emailSvc: emailSvc,
	}
}

// transition loads the transaction, runs the authorization policy and the
// status precheck, lets apply set the workflow fields, and hands the mutated
// record plus its audit entry to the repository for the atomic commit. The
// repository re-verifies the status predicate inside the database
// transaction and only writes the columns ev owns, so a race lost between
// our read and the commit surfaces as ErrInvalidTransition with no effects
// and a field-only update committed in between is never overwritten.
func (s *workflowService) transition(
	ctx context.Context,
	actor *domain.Actor,
	transactionID int32,
	ev domain.TransitionEvent,
	apply func(txn *domain.Transaction),
	activity string,
	activityType domain.ActivityType,
) (*domain.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, ev, txn); err != nil {
		return nil, err
	}

	if !domain.CanTransition(txn.Status, ev) {
		return nil, fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, ev, txn.Status)
	}

	from := domain.PredecessorStatuses(ev)
	txn.Status = domain.TargetStatus(ev)
	apply(txn)

	entry := &domain.AuditLogEntry{
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Activity:     activity,
		ActivityType: activityType,
	}

	if err := s.txnRepo.Transition(ctx, txn, ev, from, entry); err != nil {
		return nil, err
	}
	return txn, nil
}

// notifyRequester sends a post-commit notice. Email failure never unwinds a
// committed transition.
func (s *workflowService) notifyRequester(ctx context.Context, txn *domain.Transaction, send func(email, name string) error) {
	requester, err := s.actors.GetByID(ctx, txn.RequesterID)
	if err != nil {
		logger.Warn("Could not load requester for notification", "transactionID", txn.ID, "error", err)
		return
	}
	if err := send(requester.Email, requester.Name); err != nil {
		logger.Warn("Requester notification failed", "transactionID", txn.ID, "error", err)
	}
}

func (s *workflowService) RecordPayment(ctx context.Context, actor *domain.Actor, transactionID int32, paymentDate time.Time, attachmentName string) error {
	_, err := s.transition(ctx, actor, transactionID, domain.EventRecordPayment,
		func(txn *domain.Transaction) {
			txn.PaymentDate = &paymentDate
			if attachmentName != "" {
				txn.PaymentAttachment = attachmentName
			}
		},
		fmt.Sprintf("Recorded Payment for Transaction #%d", transactionID),
		domain.ActivityTypePayment,
	)
	return err
}

func (s *workflowService) Schedule(ctx context.Context, actor *domain.Actor, transactionID int32, scheduledFor time.Time) error {
	txn, err := s.transition(ctx, actor, transactionID, domain.EventSchedule,
		func(txn *domain.Transaction) {
			now := time.Now()
			txn.ScheduledFor = &scheduledFor
			txn.ScheduledAt = &now
		},
		fmt.Sprintf("Scheduled Transaction #%d", transactionID),
		domain.ActivityTypeSchedule,
	)
	if err != nil {
		return err
	}

	s.notifyRequester(ctx, txn, func(email, name string) error {
		return s.emailSvc.SendScheduleNotice(ctx, email, name, txn.ID, scheduledFor)
	})
	return nil
}

func (s *workflowService) MarkReady(ctx context.Context, actor *domain.Actor, transactionID int32) error {
	_, err := s.transition(ctx, actor, transactionID, domain.EventMarkReady,
		func(txn *domain.Transaction) {
			now := time.Now()
			txn.TaskDoneAt = &now
		},
		fmt.Sprintf("Credentials Compiled for Transaction #%d", transactionID),
		domain.ActivityTypeRelease,
	)
	return err
}

func (s *workflowService) Claim(ctx context.Context, actor *domain.Actor, transactionID int32, remarks string) error {
	txn, err := s.transition(ctx, actor, transactionID, domain.EventClaim,
		func(txn *domain.Transaction) {
			now := time.Now()
			txn.ClaimedAt = &now
			txn.ClaimRemarks = remarks
		},
		fmt.Sprintf("Claimed Transaction #%d", transactionID),
		domain.ActivityTypeClaim,
	)
	if err != nil {
		return err
	}

	s.notifyRequester(ctx, txn, func(email, name string) error {
		return s.emailSvc.SendClaimReceipt(ctx, email, name, txn.ID)
	})
	return nil
}

func (s *workflowService) Reject(ctx context.Context, actor *domain.Actor, transactionID int32, remarks string) error {
	txn, err := s.transition(ctx, actor, transactionID, domain.EventReject,
		func(txn *domain.Transaction) {
			now := time.Now()
			txn.RejectedAt = &now
			txn.RejectRemarks = remarks
		},
		fmt.Sprintf("Rejected Transaction #%d", transactionID),
		domain.ActivityTypeReject,
	)
	if err != nil {
		return err
	}

	s.notifyRequester(ctx, txn, func(email, name string) error {
		return s.emailSvc.SendRejectionNotice(ctx, email, name, txn.ID, remarks)
	})
	return nil
}

func (s *workflowService) Get(ctx context.Context, actor *domain.Actor, transactionID int32) (*domain.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(actor, txn.DepartmentID, txn.RequesterID); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *workflowService) List(ctx context.Context, actor *domain.Actor, filter repository.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	// Students only ever see their own transactions; staff and assistants
	// are pinned to their department scope.
	switch actor.Role {
	case domain.ActorRoleStudent:
		filter.RequesterID = actor.ID
	case domain.ActorRoleStaff, domain.ActorRoleStudentAssistant:
		if filter.DepartmentID != 0 {
			if !actor.InScope(filter.DepartmentID) {
				return nil, 0, domain.ErrUnauthorized
			}
		} else if len(actor.DepartmentScope) == 1 {
			filter.DepartmentID = actor.DepartmentScope[0]
		} else {
			// Multi-department scopes must name the department to list.
			return nil, 0, domain.ErrUnauthorized
		}
	case domain.ActorRoleAdmin:
		// unrestricted
	default:
		return nil, 0, domain.ErrUnauthorized
	}
	return s.txnRepo.List(ctx, filter, page, pageSize)
}

func (s *workflowService) authorizeRead(actor *domain.Actor, departmentID, requesterID int32) error {
	switch actor.Role {
	case domain.ActorRoleAdmin:
		return nil
	case domain.ActorRoleStudent:
		if actor.ID != requesterID {
			return domain.ErrUnauthorized
		}
		return nil
	default:
		if !actor.InScope(departmentID) {
			return domain.ErrUnauthorized
		}
		return nil
	}
}
