package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"registrar-portal-backend/internal/domain"
)

func int32Ptr(v int32) *int32 { return &v }

func TestIntakeService_Submit(t *testing.T) {
	ctx := context.Background()
	requesterID := int32(100)

	requester := &domain.Actor{
		ID:           requesterID,
		Role:         domain.ActorRoleStudent,
		DepartmentID: 3,
		Active:       true,
	}

	t.Run("Snapshots Catalog Prices", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)
		credRepo.On("GetByID", ctx, int32(5)).Return(&domain.Credential{
			ID: 5, Name: "Official Transcript", PriceCents: 100,
		}, nil)
		txnRepo.On("CreateWithItems", ctx, mock.AnythingOfType("*domain.Transaction"),
			mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

		txn, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(5), Quantity: 2},
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusSubmitted, txn.Status)
		assert.Equal(t, int32(3), txn.DepartmentID)
		assert.Equal(t, int32(200), txn.TotalAmountCents)

		assert.Len(t, txn.LineItems, 1)
		item := txn.LineItems[0]
		assert.Equal(t, domain.LineItemKindCredential, item.Kind)
		assert.Equal(t, "Official Transcript", item.Name)
		assert.Equal(t, int32(100), item.UnitPriceCents)
		assert.Equal(t, int32(2), item.Quantity)
		assert.Equal(t, int32(200), item.AmountCents)

		entry := txnRepo.Calls[0].Arguments.Get(2).(*domain.AuditLogEntry)
		assert.Equal(t, requesterID, entry.ActorID)
		assert.Equal(t, domain.ActivityTypeRequest, entry.ActivityType)
	})

	t.Run("Empty Cart", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		_, err := svc.Submit(ctx, requesterID, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
		txnRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Deleted Credential", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)
		credRepo.On("GetByID", ctx, int32(5)).Return(&domain.Credential{
			ID: 5, Name: "Retired Certificate", PriceCents: 100, Deleted: true,
		}, nil)

		_, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(5), Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReference)
	})

	t.Run("Unknown Credential", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)
		credRepo.On("GetByID", ctx, int32(404)).Return(nil, domain.ErrNotFound)

		_, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(404), Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReference)
	})

	t.Run("Ambiguous Line Item", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)

		_, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(5), PackageID: int32Ptr(2), Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReference)
	})

	t.Run("Non-Positive Quantity", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)

		_, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(5), Quantity: 0},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReference)
	})

	t.Run("Quantity Above Cap", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)

		_, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(5), Quantity: maxLineItemQuantity + 1},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReference)
		txnRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Amount Overflowing Int32", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)
		credRepo.On("GetByID", ctx, int32(5)).Return(&domain.Credential{
			ID: 5, Name: "Official Transcript", PriceCents: math.MaxInt32,
		}, nil)

		_, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(5), Quantity: 2},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReference)
		txnRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cart Total Overflowing Int32", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)
		credRepo.On("GetByID", ctx, int32(5)).Return(&domain.Credential{
			ID: 5, Name: "Official Transcript", PriceCents: math.MaxInt32 / 2,
		}, nil)

		// Each line item fits an int32 but their sum does not.
		_, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{CredentialID: int32Ptr(5), Quantity: 1},
			{CredentialID: int32Ptr(5), Quantity: 1},
			{CredentialID: int32Ptr(5), Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReference)
		txnRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Priced Package", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)
		pkgRepo.On("GetByID", ctx, int32(2)).Return(&domain.Package{
			ID: 2, Name: "Graduation Bundle", PriceCents: 450,
		}, nil)
		txnRepo.On("CreateWithItems", ctx, mock.Anything, mock.Anything).Return(nil)

		txn, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{PackageID: int32Ptr(2), Quantity: 1},
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(450), txn.TotalAmountCents)
		assert.Equal(t, domain.LineItemKindPackage, txn.LineItems[0].Kind)
	})

	t.Run("Unpriced Package Sums Constituents", func(t *testing.T) {
		txnRepo := new(MockTransactionRepo)
		credRepo := new(MockCredentialRepo)
		pkgRepo := new(MockPackageRepo)
		actorRepo := new(MockActorRepo)
		svc := NewIntakeService(txnRepo, credRepo, pkgRepo, actorRepo)

		actorRepo.On("GetByID", ctx, requesterID).Return(requester, nil)
		pkgRepo.On("GetByID", ctx, int32(2)).Return(&domain.Package{
			ID:   2,
			Name: "Diploma Set",
			Items: []domain.PackageItem{
				{PackageID: 2, CredentialID: 5, Quantity: 1},
				{PackageID: 2, CredentialID: 6, Quantity: 2},
			},
		}, nil)
		credRepo.On("GetByID", ctx, int32(5)).Return(&domain.Credential{ID: 5, PriceCents: 100}, nil)
		credRepo.On("GetByID", ctx, int32(6)).Return(&domain.Credential{ID: 6, PriceCents: 50}, nil)
		txnRepo.On("CreateWithItems", ctx, mock.Anything, mock.Anything).Return(nil)

		txn, err := svc.Submit(ctx, requesterID, []LineItemRequest{
			{PackageID: int32Ptr(2), Quantity: 1},
		})
		assert.NoError(t, err)
		// 100*1 + 50*2
		assert.Equal(t, int32(200), txn.TotalAmountCents)
	})
}
