package service

import (
	"context"
	"time"

	"bravonest/internal/domain"
)

// ProfileService covers the caller's profile, favorites and delivery
// addresses.
type ProfileService struct {
	repo     ProfileRepository
	identity Identity
	now      func() time.Time
}

func NewProfileService(repo ProfileRepository, identity Identity) *ProfileService {
	return &ProfileService{repo: repo, identity: identity, now: time.Now}
}

func (s *ProfileService) userID(op string) (string, error) {
	id, ok := s.identity.CurrentUserID()
	if !ok {
		return "", domain.E(domain.KindUnauthenticated, op, "please sign in first", nil)
	}
	return id, nil
}

// GetProfile returns nil when no profile row exists yet; that is not an
// error.
func (s *ProfileService) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	userID, err := s.userID("GetProfile")
	if err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, userID)
}

// UpsertProfile creates the profile row on first write and merges on
// subsequent writes, stamping the update time.
func (s *ProfileService) UpsertProfile(ctx context.Context, patch domain.UserProfile) (*domain.UserProfile, error) {
	userID, err := s.userID("UpsertProfile")
	if err != nil {
		return nil, err
	}
	patch.ID = userID
	patch.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return s.repo.UpsertProfile(ctx, patch)
}

func (s *ProfileService) ListFavorites(ctx context.Context) ([]domain.Favorite, error) {
	userID, err := s.userID("ListFavorites")
	if err != nil {
		return nil, err
	}
	return s.repo.ListFavorites(ctx, userID)
}

// ToggleFavorite flips the favorite row for (user, restaurant) and reports
// the resulting state: true when the restaurant is now favorited. The
// read-then-branch is not transactionally isolated; two concurrent toggles
// for the same pair can both insert. The backend surface offers no atomic
// toggle, so the race stands documented rather than hidden.
func (s *ProfileService) ToggleFavorite(ctx context.Context, restaurantID string) (bool, error) {
	userID, err := s.userID("ToggleFavorite")
	if err != nil {
		return false, err
	}
	if restaurantID == "" {
		return false, domain.E(domain.KindValidation, "ToggleFavorite", "restaurant id is required", nil)
	}

	existing, err := s.repo.GetFavorite(ctx, userID, restaurantID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.repo.DeleteFavorite(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.repo.InsertFavorite(ctx, userID, restaurantID); err != nil {
		return false, err
	}
	return true, nil
}

// ListAddresses returns the caller's addresses, default first.
func (s *ProfileService) ListAddresses(ctx context.Context) ([]domain.DeliveryAddress, error) {
	userID, err := s.userID("ListAddresses")
	if err != nil {
		return nil, err
	}
	return s.repo.ListAddresses(ctx, userID)
}

// CreateAddress stores a new delivery address. When the new address is the
// default, every other default for the user is cleared first so at most one
// default row survives.
func (s *ProfileService) CreateAddress(ctx context.Context, input domain.AddressInput) (*domain.DeliveryAddress, error) {
	userID, err := s.userID("CreateAddress")
	if err != nil {
		return nil, err
	}
	if input.Label == "" || input.AddressLine1 == "" || input.City == "" || input.State == "" || input.ZipCode == "" {
		return nil, domain.E(domain.KindValidation, "CreateAddress", "label, address, city, state and zip are required", nil)
	}

	if input.IsDefault {
		if err := s.repo.ClearDefaultAddresses(ctx, userID); err != nil {
			return nil, err
		}
	}
	return s.repo.InsertAddress(ctx, userID, input)
}

var _ ProfileServiceInterface = (*ProfileService)(nil)
