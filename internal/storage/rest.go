package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"bravonest/internal/domain"
)

// HTTPClient is the transport used for backend calls.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies the access token for the current session, if any.
// Without a token, requests carry only the public API key.
type TokenSource interface {
	AccessToken() (string, bool)
}

// RestClient issues table-scoped CRUD calls against the hosted data backend.
// Each method is one request/response round trip; nothing is cached.
type RestClient struct {
	baseURL string
	apiKey  string
	client  HTTPClient
	tokens  TokenSource
	timeout time.Duration
}

func NewRestClient(baseURL, apiKey string, client HTTPClient, tokens TokenSource, timeout time.Duration) *RestClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RestClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		tokens:  tokens,
		timeout: timeout,
	}
}

// do performs one CRUD call against /rest/v1/{table} and decodes the
// response into out when out is non-nil.
func (c *RestClient) do(ctx context.Context, op, method, table string, query url.Values, prefer string, body interface{}, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.E(domain.KindGateway, op, "failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return domain.E(domain.KindGateway, op, "failed to build request", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.E(domain.KindTimeout, op, "backend request timed out", err)
		}
		return domain.E(domain.KindGateway, op, "backend request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return domain.E(domain.KindGateway, op, "malformed backend response", err)
		}
	}
	return nil
}

func (c *RestClient) bearer() string {
	if c.tokens != nil {
		if token, ok := c.tokens.AccessToken(); ok {
			return token
		}
	}
	return c.apiKey
}

func (c *RestClient) statusError(op string, resp *http.Response) error {
	var backendErr struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &backendErr)

	msg := backendErr.Message
	if msg == "" {
		msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.E(domain.KindUnauthenticated, op, msg, nil)
	case http.StatusNotFound:
		return domain.E(domain.KindNotFound, op, msg, nil)
	default:
		return domain.E(domain.KindGateway, op, msg, nil)
	}
}

func (c *RestClient) ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("is_open", "eq.true")
	q.Set("order", "rating.desc")
	if filter.Featured {
		q.Set("is_featured", "eq.true")
	}
	if filter.Cuisine != "" && filter.Cuisine != "All" {
		q.Set("cuisine_type", "eq."+filter.Cuisine)
	}
	if filter.Search != "" {
		q.Set("or", fmt.Sprintf("(name.ilike.*%s*,cuisine_type.ilike.*%s*)", filter.Search, filter.Search))
	}

	var restaurants []domain.Restaurant
	if err := c.do(ctx, "ListRestaurants", http.MethodGet, "restaurants", q, "", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *RestClient) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var restaurants []domain.Restaurant
	if err := c.do(ctx, "GetRestaurant", http.MethodGet, "restaurants", q, "", nil, &restaurants); err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, domain.E(domain.KindNotFound, "GetRestaurant", "restaurant not found", nil)
	}
	return &restaurants[0], nil
}

func (c *RestClient) ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	q := url.Values{}
	q.Set("select", "*,category:categories(*)")
	q.Set("restaurant_id", "eq."+restaurantID)
	q.Set("is_available", "eq.true")
	q.Set("order", "is_popular.desc")

	var items []domain.MenuItem
	if err := c.do(ctx, "ListMenuItems", http.MethodGet, "menu_items", q, "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RestClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "name.asc")

	var categories []domain.Category
	if err := c.do(ctx, "ListCategories", http.MethodGet, "categories", q, "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

type orderRow struct {
	UserID                string  `json:"user_id"`
	RestaurantID          string  `json:"restaurant_id"`
	Subtotal              float64 `json:"subtotal"`
	DeliveryFee           float64 `json:"delivery_fee"`
	ServiceFee            float64 `json:"service_fee"`
	Tax                   float64 `json:"tax"`
	Tip                   float64 `json:"tip"`
	Total                 float64 `json:"total"`
	PaymentMethod         string  `json:"payment_method,omitempty"`
	SpecialInstructions   string  `json:"special_instructions,omitempty"`
	EstimatedDeliveryTime string  `json:"estimated_delivery_time"`
}

func (c *RestClient) InsertOrder(ctx context.Context, userID string, input domain.OrderInput, estimatedDelivery time.Time) (*domain.Order, error) {
	row := orderRow{
		UserID:                userID,
		RestaurantID:          input.RestaurantID,
		Subtotal:              input.Subtotal,
		DeliveryFee:           input.DeliveryFee,
		ServiceFee:            input.ServiceFee,
		Tax:                   input.Tax,
		Tip:                   input.Tip,
		Total:                 input.Total,
		PaymentMethod:         input.PaymentMethod,
		SpecialInstructions:   input.SpecialInstructions,
		EstimatedDeliveryTime: estimatedDelivery.UTC().Format(time.RFC3339),
	}

	var created []domain.Order
	if err := c.do(ctx, "InsertOrder", http.MethodPost, "orders", nil, "return=representation", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, domain.E(domain.KindGateway, "InsertOrder", "backend returned no order row", nil)
	}
	return &created[0], nil
}

type orderItemRow struct {
	OrderID             string  `json:"order_id"`
	MenuItemID          string  `json:"menu_item_id"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	TotalPrice          float64 `json:"total_price"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

func (c *RestClient) InsertOrderItems(ctx context.Context, orderID string, items []domain.OrderItemInput) ([]domain.OrderItem, error) {
	rows := make([]orderItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, orderItemRow{
			OrderID:             orderID,
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			TotalPrice:          item.UnitPrice * float64(item.Quantity),
			SpecialInstructions: item.Note,
		})
	}

	var created []domain.OrderItem
	if err := c.do(ctx, "InsertOrderItems", http.MethodPost, "order_items", nil, "return=representation", rows, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteOrder removes an order row. Used as the compensation step when the
// item insert fails after the order row was written.
func (c *RestClient) DeleteOrder(ctx context.Context, orderID string) error {
	q := url.Values{}
	q.Set("id", "eq."+orderID)
	return c.do(ctx, "DeleteOrder", http.MethodDelete, "orders", q, "", nil, nil)
}

func (c *RestClient) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	q := url.Values{}
	q.Set("select", "*,restaurant:restaurants(*),order_items:order_items(*,menu_item:menu_items(*))")
	q.Set("user_id", "eq."+userID)
	q.Set("order", "created_at.desc")

	var orders []domain.Order
	if err := c.do(ctx, "ListUserOrders", http.MethodGet, "orders", q, "", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *RestClient) ListReviews(ctx context.Context, restaurantID string, limit int) ([]domain.Review, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("restaurant_id", "eq."+restaurantID)
	q.Set("order", "created_at.desc")
	q.Set("limit", fmt.Sprintf("%d", limit))

	var reviews []domain.Review
	if err := c.do(ctx, "ListReviews", http.MethodGet, "reviews", q, "", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

type reviewRow struct {
	UserID         string `json:"user_id"`
	RestaurantID   string `json:"restaurant_id"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment,omitempty"`
	FoodRating     *int   `json:"food_rating,omitempty"`
	DeliveryRating *int   `json:"delivery_rating,omitempty"`
	ServiceRating  *int   `json:"service_rating,omitempty"`
}

func (c *RestClient) InsertReview(ctx context.Context, userID string, input domain.ReviewInput) (*domain.Review, error) {
	row := reviewRow{
		UserID:         userID,
		RestaurantID:   input.RestaurantID,
		Rating:         input.Rating,
		Comment:        input.Comment,
		FoodRating:     input.FoodRating,
		DeliveryRating: input.DeliveryRating,
		ServiceRating:  input.ServiceRating,
	}

	var created []domain.Review
	if err := c.do(ctx, "InsertReview", http.MethodPost, "reviews", nil, "return=representation", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, domain.E(domain.KindGateway, "InsertReview", "backend returned no review row", nil)
	}
	return &created[0], nil
}

// GetProfile returns nil without an error when no profile row exists yet.
func (c *RestClient) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+userID)
	q.Set("limit", "1")

	var profiles []domain.UserProfile
	if err := c.do(ctx, "GetProfile", http.MethodGet, "user_profiles", q, "", nil, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (c *RestClient) UpsertProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	var saved []domain.UserProfile
	prefer := "resolution=merge-duplicates,return=representation"
	if err := c.do(ctx, "UpsertProfile", http.MethodPost, "user_profiles", nil, prefer, profile, &saved); err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return nil, domain.E(domain.KindGateway, "UpsertProfile", "backend returned no profile row", nil)
	}
	return &saved[0], nil
}

func (c *RestClient) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	q := url.Values{}
	q.Set("select", "*,restaurant:restaurants(*)")
	q.Set("user_id", "eq."+userID)

	var favorites []domain.Favorite
	if err := c.do(ctx, "ListFavorites", http.MethodGet, "favorites", q, "", nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// GetFavorite returns nil without an error when no favorite row exists for
// the (user, restaurant) pair.
func (c *RestClient) GetFavorite(ctx context.Context, userID, restaurantID string) (*domain.Favorite, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Set("restaurant_id", "eq."+restaurantID)
	q.Set("limit", "1")

	var favorites []domain.Favorite
	if err := c.do(ctx, "GetFavorite", http.MethodGet, "favorites", q, "", nil, &favorites); err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, nil
	}
	return &favorites[0], nil
}

func (c *RestClient) InsertFavorite(ctx context.Context, userID, restaurantID string) error {
	row := map[string]string{
		"user_id":       userID,
		"restaurant_id": restaurantID,
	}
	return c.do(ctx, "InsertFavorite", http.MethodPost, "favorites", nil, "", row, nil)
}

func (c *RestClient) DeleteFavorite(ctx context.Context, favoriteID string) error {
	q := url.Values{}
	q.Set("id", "eq."+favoriteID)
	return c.do(ctx, "DeleteFavorite", http.MethodDelete, "favorites", q, "", nil, nil)
}

func (c *RestClient) ListAddresses(ctx context.Context, userID string) ([]domain.DeliveryAddress, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Set("order", "is_default.desc")

	var addresses []domain.DeliveryAddress
	if err := c.do(ctx, "ListAddresses", http.MethodGet, "delivery_addresses", q, "", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// ClearDefaultAddresses unsets is_default on every address the user has
// marked default, so at most one default survives a subsequent insert.
func (c *RestClient) ClearDefaultAddresses(ctx context.Context, userID string) error {
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("is_default", "eq.true")
	body := map[string]bool{"is_default": false}
	return c.do(ctx, "ClearDefaultAddresses", http.MethodPatch, "delivery_addresses", q, "", body, nil)
}

type addressRow struct {
	UserID       string `json:"user_id"`
	Label        string `json:"label"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	IsDefault    bool   `json:"is_default"`
}

func (c *RestClient) InsertAddress(ctx context.Context, userID string, input domain.AddressInput) (*domain.DeliveryAddress, error) {
	row := addressRow{
		UserID:       userID,
		Label:        input.Label,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		IsDefault:    input.IsDefault,
	}

	var created []domain.DeliveryAddress
	if err := c.do(ctx, "InsertAddress", http.MethodPost, "delivery_addresses", nil, "return=representation", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, domain.E(domain.KindGateway, "InsertAddress", "backend returned no address row", nil)
	}
	return &created[0], nil
}
