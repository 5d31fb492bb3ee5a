package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"glanz-rental-backend/internal/domain"
)

func TestTaxService_ResolveProfile(t *testing.T) {
	ctx := context.Background()

	ownerProfile := &domain.TaxProfile{UserID: 1, BusinessName: "HQ", TaxRatePercent: 5}
	staffProfile := &domain.TaxProfile{UserID: 2, BusinessName: "Branch", TaxRatePercent: 9}

	t.Run("Owner resolves own profile", func(t *testing.T) {
		taxRepo := new(MockTaxProfileRepo)
		userRepo := new(MockUserRepo)
		svc := NewTaxService(taxRepo, userRepo, 0)

		userRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Role: domain.UserRoleOwner}, nil)
		taxRepo.On("GetByUserID", mock.Anything, int64(1)).Return(ownerProfile, nil)

		p := svc.ResolveProfile(ctx, 1)
		assert.Equal(t, ownerProfile, p)
		taxRepo.AssertNotCalled(t, "GetOwnerProfile", mock.Anything)
	})

	t.Run("Delegated actor inherits the owner profile", func(t *testing.T) {
		taxRepo := new(MockTaxProfileRepo)
		userRepo := new(MockUserRepo)
		svc := NewTaxService(taxRepo, userRepo, 0)

		userRepo.On("GetByID", mock.Anything, int64(2)).
			Return(&domain.User{ID: 2, Role: domain.UserRoleStaff}, nil)
		taxRepo.On("GetOwnerProfile", mock.Anything).Return(ownerProfile, nil)

		p := svc.ResolveProfile(ctx, 2)
		assert.Equal(t, ownerProfile, p)
		taxRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})

	t.Run("Owner lookup failure falls back to own profile", func(t *testing.T) {
		taxRepo := new(MockTaxProfileRepo)
		userRepo := new(MockUserRepo)
		svc := NewTaxService(taxRepo, userRepo, 0)

		userRepo.On("GetByID", mock.Anything, int64(2)).
			Return(&domain.User{ID: 2, Role: domain.UserRoleBranch}, nil)
		taxRepo.On("GetOwnerProfile", mock.Anything).Return(nil, errors.New("no owner"))
		taxRepo.On("GetByUserID", mock.Anything, int64(2)).Return(staffProfile, nil)

		p := svc.ResolveProfile(ctx, 2)
		assert.Equal(t, staffProfile, p)
	})

	t.Run("Actor lookup failure falls back to own profile", func(t *testing.T) {
		taxRepo := new(MockTaxProfileRepo)
		userRepo := new(MockUserRepo)
		svc := NewTaxService(taxRepo, userRepo, 0)

		userRepo.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("db down"))
		taxRepo.On("GetByUserID", mock.Anything, int64(3)).Return(staffProfile, nil)

		p := svc.ResolveProfile(ctx, 3)
		assert.Equal(t, staffProfile, p)
	})

	t.Run("No profile at all degrades to nil", func(t *testing.T) {
		taxRepo := new(MockTaxProfileRepo)
		userRepo := new(MockUserRepo)
		svc := NewTaxService(taxRepo, userRepo, 0)

		userRepo.On("GetByID", mock.Anything, int64(4)).
			Return(&domain.User{ID: 4, Role: domain.UserRoleOwner}, nil)
		taxRepo.On("GetByUserID", mock.Anything, int64(4)).Return(nil, errors.New("no rows"))

		assert.Nil(t, svc.ResolveProfile(ctx, 4))
	})
}
