// Package mocks holds hand-written testify mocks for the service-layer
// interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bravonest/internal/domain"
)

type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *CatalogRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *CatalogRepository) ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *CatalogRepository) ListReviews(ctx context.Context, restaurantID string, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, restaurantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *CatalogRepository) InsertReview(ctx context.Context, userID string, input domain.ReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) InsertOrder(ctx context.Context, userID string, input domain.OrderInput, estimatedDelivery time.Time) (*domain.Order, error) {
	args := m.Called(ctx, userID, input, estimatedDelivery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) InsertOrderItems(ctx context.Context, orderID string, items []domain.OrderItemInput) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepository) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *ProfileRepository) UpsertProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *ProfileRepository) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *ProfileRepository) GetFavorite(ctx context.Context, userID, restaurantID string) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *ProfileRepository) InsertFavorite(ctx context.Context, userID, restaurantID string) error {
	args := m.Called(ctx, userID, restaurantID)
	return args.Error(0)
}

func (m *ProfileRepository) DeleteFavorite(ctx context.Context, favoriteID string) error {
	args := m.Called(ctx, favoriteID)
	return args.Error(0)
}

func (m *ProfileRepository) ListAddresses(ctx context.Context, userID string) ([]domain.DeliveryAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryAddress), args.Error(1)
}

func (m *ProfileRepository) ClearDefaultAddresses(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *ProfileRepository) InsertAddress(ctx context.Context, userID string, input domain.AddressInput) (*domain.DeliveryAddress, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryAddress), args.Error(1)
}

type AuthAPI struct {
	mock.Mock
}

func (m *AuthAPI) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *AuthAPI) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.Session, error) {
	args := m.Called(ctx, email, password, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *AuthAPI) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *AuthAPI) GetUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type GenerativeAPI struct {
	mock.Mock
}

func (m *GenerativeAPI) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Identity is a fixed-identity stub for auth-gated service tests.
type Identity struct {
	UserID string
}

func (m *Identity) CurrentUserID() (string, bool) {
	return m.UserID, m.UserID != ""
}
