package service

import (
	"context"
	"time"

	"bravonest/internal/domain"
)

// CatalogRepository is the read/write surface for restaurants, menus,
// categories and reviews.
type CatalogRepository interface {
	ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListReviews(ctx context.Context, restaurantID string, limit int) ([]domain.Review, error)
	InsertReview(ctx context.Context, userID string, input domain.ReviewInput) (*domain.Review, error)
}

// OrderRepository writes and reads order rows.
type OrderRepository interface {
	InsertOrder(ctx context.Context, userID string, input domain.OrderInput, estimatedDelivery time.Time) (*domain.Order, error)
	InsertOrderItems(ctx context.Context, orderID string, items []domain.OrderItemInput) ([]domain.OrderItem, error)
	DeleteOrder(ctx context.Context, orderID string) error
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

// ProfileRepository covers profiles, favorites and delivery addresses.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error)
	ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error)
	GetFavorite(ctx context.Context, userID, restaurantID string) (*domain.Favorite, error)
	InsertFavorite(ctx context.Context, userID, restaurantID string) error
	DeleteFavorite(ctx context.Context, favoriteID string) error
	ListAddresses(ctx context.Context, userID string) ([]domain.DeliveryAddress, error)
	ClearDefaultAddresses(ctx context.Context, userID string) error
	InsertAddress(ctx context.Context, userID string, input domain.AddressInput) (*domain.DeliveryAddress, error)
}

// AuthAPI is the backend's authentication sub-interface.
type AuthAPI interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	GetUser(ctx context.Context, token string) (*domain.User, error)
}

// GenerativeAPI is the single-shot text generation surface.
type GenerativeAPI interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Identity supplies the signed-in user id to the services that gate on
// authentication. Implemented by AuthService.
type Identity interface {
	CurrentUserID() (string, bool)
}

type CatalogServiceInterface interface {
	ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListReviews(ctx context.Context, restaurantID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, input domain.ReviewInput) (*domain.Review, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, input domain.OrderInput) (*domain.Order, error)
	ListUserOrders(ctx context.Context) ([]domain.Order, error)
	PickupQR(orderID string) ([]byte, error)
}

type ProfileServiceInterface interface {
	GetProfile(ctx context.Context) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, patch domain.UserProfile) (*domain.UserProfile, error)
	ListFavorites(ctx context.Context) ([]domain.Favorite, error)
	ToggleFavorite(ctx context.Context, restaurantID string) (bool, error)
	ListAddresses(ctx context.Context) ([]domain.DeliveryAddress, error)
	CreateAddress(ctx context.Context, input domain.AddressInput) (*domain.DeliveryAddress, error)
}

type RecommendationServiceInterface interface {
	GetRecommendations(ctx context.Context, prefs domain.RecommendationPrefs) string
	GetChatResponse(ctx context.Context, message string) string
}
