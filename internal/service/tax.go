package service

import (
	"context"
	"time"

	"glanz-rental-backend/internal/domain"
	"glanz-rental-backend/internal/logger"
	"glanz-rental-backend/internal/repository"
)

type taxService struct {
	taxRepo        repository.TaxProfileRepository
	userRepo       repository.UserRepository
	resolveTimeout time.Duration
}

func NewTaxService(taxRepo repository.TaxProfileRepository, userRepo repository.UserRepository, resolveTimeout time.Duration) TaxService {
	if resolveTimeout <= 0 {
		resolveTimeout = 5 * time.Second
	}
	return &taxService{
		taxRepo:        taxRepo,
		userRepo:       userRepo,
		resolveTimeout: resolveTimeout,
	}
}

// ResolveProfile never returns an error: any lookup failure degrades to the
// next fallback, ending at "no profile" (tax disabled). The lookups are
// bounded so a slow database cannot stall a submission indefinitely.
func (s *taxService) ResolveProfile(ctx context.Context, actorID int64) *domain.TaxProfile {
	ctx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	defer cancel()

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		logger.Warn("Tax resolution: actor lookup failed, using own profile", "actor_id", actorID, "error", err)
	}

	if actor != nil && actor.Delegated() {
		if p, err := s.taxRepo.GetOwnerProfile(ctx); err == nil {
			return p
		}
		// Silent fallback to the submitter's own profile.
		logger.Debug("Owner tax profile unavailable, falling back", "actor_id", actorID)
	}

	p, err := s.taxRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return nil
	}
	return p
}

func (s *taxService) GetProfile(ctx context.Context, userID int64) (*domain.TaxProfile, error) {
	return s.taxRepo.GetByUserID(ctx, userID)
}

func (s *taxService) SaveProfile(ctx context.Context, profile *domain.TaxProfile) error {
	return s.taxRepo.Upsert(ctx, profile)
}
