package service

import (
	"context"

	"bravonest/internal/domain"
)

// reviewPageSize caps a restaurant's review listing.
const reviewPageSize = 20

// CatalogService is the read side of the remote data gateway: restaurants,
// menus, categories and reviews. All filtering happens on the backend.
type CatalogService struct {
	repo     CatalogRepository
	identity Identity
}

func NewCatalogService(repo CatalogRepository, identity Identity) *CatalogService {
	return &CatalogService{repo: repo, identity: identity}
}

func (s *CatalogService) ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx, filter)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	if id == "" {
		return nil, domain.E(domain.KindValidation, "GetRestaurant", "restaurant id is required", nil)
	}
	return s.repo.GetRestaurant(ctx, id)
}

func (s *CatalogService) ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	if restaurantID == "" {
		return nil, domain.E(domain.KindValidation, "ListMenuItems", "restaurant id is required", nil)
	}
	return s.repo.ListMenuItems(ctx, restaurantID)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) ListReviews(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	if restaurantID == "" {
		return nil, domain.E(domain.KindValidation, "ListReviews", "restaurant id is required", nil)
	}
	return s.repo.ListReviews(ctx, restaurantID, reviewPageSize)
}

// CreateReview attaches the caller's identity and appends the review.
func (s *CatalogService) CreateReview(ctx context.Context, input domain.ReviewInput) (*domain.Review, error) {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return nil, domain.E(domain.KindUnauthenticated, "CreateReview", "please sign in to leave a review", nil)
	}
	if input.RestaurantID == "" {
		return nil, domain.E(domain.KindValidation, "CreateReview", "restaurant id is required", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.E(domain.KindValidation, "CreateReview", "rating must be between 1 and 5", nil)
	}
	return s.repo.InsertReview(ctx, userID, input)
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
