package service

import (
	"context"
	"fmt"
	"math"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/logger"
	"registrar-portal-backend/internal/repository"
)

// maxLineItemQuantity bounds a single cart entry.
const maxLineItemQuantity = 100

type intakeService struct {
	txnRepo  repository.TransactionRepository
	credRepo repository.CredentialRepository
	pkgRepo  repository.PackageRepository
	actors   repository.ActorRepository
}

func NewIntakeService(
	txnRepo repository.TransactionRepository,
	credRepo repository.CredentialRepository,
	pkgRepo repository.PackageRepository,
	actors repository.ActorRepository,
) IntakeService {
	return &intakeService{
		txnRepo:  txnRepo,
		credRepo: credRepo,
		pkgRepo:  pkgRepo,
		actors:   actors,
	}
}

func (s *intakeService) Submit(ctx context.Context, requesterID int32, items []LineItemRequest) (*domain.Transaction, error) {
	logger.EnterMethod("intakeService.Submit", "requesterID", requesterID, "items", len(items))

	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	requester, err := s.actors.GetByID(ctx, requesterID)
	if err != nil {
		logger.ExitMethodWithError("intakeService.Submit", err, "requesterID", requesterID)
		return nil, err
	}

	txn := &domain.Transaction{
		RequesterID:  requester.ID,
		DepartmentID: requester.DepartmentID,
		Status:       domain.TransactionStatusSubmitted,
	}

	var total int64
	for _, req := range items {
		if req.Quantity <= 0 || req.Quantity > maxLineItemQuantity {
			return nil, fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrInvalidReference, maxLineItemQuantity)
		}
		item, err := s.resolveItem(ctx, req)
		if err != nil {
			logger.ExitMethodWithError("intakeService.Submit", err, "requesterID", requesterID)
			return nil, err
		}
		total += int64(item.AmountCents)
		txn.LineItems = append(txn.LineItems, *item)
	}
	if total > math.MaxInt32 {
		return nil, fmt.Errorf("%w: cart total exceeds the representable amount", domain.ErrInvalidReference)
	}
	txn.TotalAmountCents = int32(total)

	entry := &domain.AuditLogEntry{
		ActorID:      requester.ID,
		ActorRole:    requester.Role,
		Activity:     fmt.Sprintf("Requested Credentials (%d line items, total %d cents)", len(txn.LineItems), txn.TotalAmountCents),
		ActivityType: domain.ActivityTypeRequest,
	}

	if err := s.txnRepo.CreateWithItems(ctx, txn, entry); err != nil {
		logger.ExitMethodWithError("intakeService.Submit", err, "requesterID", requesterID)
		return nil, err
	}

	logger.ExitMethod("intakeService.Submit", "transactionID", txn.ID, "total", txn.TotalAmountCents)
	return txn, nil
}

// resolveItem validates one cart entry against the catalog and snapshots the
// current name and price into the line item.
func (s *intakeService) resolveItem(ctx context.Context, req LineItemRequest) (*domain.LineItem, error) {
	switch {
	case req.CredentialID != nil && req.PackageID == nil:
		cred, err := s.credRepo.GetByID(ctx, *req.CredentialID)
		if err != nil || cred.Deleted {
			return nil, fmt.Errorf("%w: credential %d", domain.ErrInvalidReference, *req.CredentialID)
		}
		amount := int64(cred.PriceCents) * int64(req.Quantity)
		if amount > math.MaxInt32 {
			return nil, fmt.Errorf("%w: credential %d amount exceeds the representable total", domain.ErrInvalidReference, *req.CredentialID)
		}
		return &domain.LineItem{
			Kind:           domain.LineItemKindCredential,
			CredentialID:   req.CredentialID,
			Name:           cred.Name,
			UnitPriceCents: cred.PriceCents,
			Quantity:       req.Quantity,
			AmountCents:    int32(amount),
		}, nil

	case req.PackageID != nil && req.CredentialID == nil:
		pkg, err := s.pkgRepo.GetByID(ctx, *req.PackageID)
		if err != nil || pkg.Deleted {
			return nil, fmt.Errorf("%w: package %d", domain.ErrInvalidReference, *req.PackageID)
		}
		price := int64(pkg.PriceCents)
		if price == 0 {
			// Packages without their own price resolve to the sum of their
			// constituent credential prices.
			for _, pi := range pkg.Items {
				cred, err := s.credRepo.GetByID(ctx, pi.CredentialID)
				if err != nil || cred.Deleted {
					return nil, fmt.Errorf("%w: package %d references credential %d", domain.ErrInvalidReference, pkg.ID, pi.CredentialID)
				}
				price += int64(cred.PriceCents) * int64(pi.Quantity)
			}
		}
		amount := price * int64(req.Quantity)
		if price > math.MaxInt32 || amount > math.MaxInt32 {
			return nil, fmt.Errorf("%w: package %d amount exceeds the representable total", domain.ErrInvalidReference, *req.PackageID)
		}
		return &domain.LineItem{
			Kind:           domain.LineItemKindPackage,
			PackageID:      req.PackageID,
			Name:           pkg.Name,
			UnitPriceCents: int32(price),
			Quantity:       req.Quantity,
			AmountCents:    int32(amount),
		}, nil

	default:
		return nil, fmt.Errorf("%w: line item must reference exactly one credential or package", domain.ErrInvalidReference)
	}
}
