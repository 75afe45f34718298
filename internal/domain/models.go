package domain

import "time"

type Restaurant struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	CuisineType     string  `json:"cuisine_type"`
	ImageURL        string  `json:"image_url"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"review_count"`
	DeliveryTimeMin int     `json:"delivery_time_min"`
	DeliveryTimeMax int     `json:"delivery_time_max"`
	DeliveryFee     float64 `json:"delivery_fee"`
	MinimumOrder    float64 `json:"minimum_order"`
	IsOpen          bool    `json:"is_open"`
	IsFeatured      bool    `json:"is_featured"`
	Address         string  `json:"address"`
	Phone           string  `json:"phone"`
}

type MenuItem struct {
	ID              string    `json:"id"`
	RestaurantID    string    `json:"restaurant_id"`
	CategoryID      string    `json:"category_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	ImageURL        string    `json:"image_url"`
	IsAvailable     bool      `json:"is_available"`
	IsPopular       bool      `json:"is_popular"`
	IsVegetarian    bool      `json:"is_vegetarian"`
	IsVegan         bool      `json:"is_vegan"`
	IsGlutenFree    bool      `json:"is_gluten_free"`
	Calories        *int      `json:"calories,omitempty"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	Category        *Category `json:"category,omitempty"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type Order struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"user_id"`
	RestaurantID          string      `json:"restaurant_id"`
	Status                OrderStatus `json:"status"`
	Subtotal              float64     `json:"subtotal"`
	DeliveryFee           float64     `json:"delivery_fee"`
	ServiceFee            float64     `json:"service_fee"`
	Tax                   float64     `json:"tax"`
	Tip                   float64     `json:"tip"`
	Total                 float64     `json:"total"`
	PaymentMethod         string      `json:"payment_method"`
	SpecialInstructions   string      `json:"special_instructions,omitempty"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time  `json:"actual_delivery_time,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	Restaurant            *Restaurant `json:"restaurant,omitempty"`
	Items                 []OrderItem `json:"order_items,omitempty"`
}

type OrderItem struct {
	ID                  string    `json:"id"`
	OrderID             string    `json:"order_id"`
	MenuItemID          string    `json:"menu_item_id"`
	Quantity            int       `json:"quantity"`
	UnitPrice           float64   `json:"unit_price"`
	TotalPrice          float64   `json:"total_price"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	MenuItem            *MenuItem `json:"menu_item,omitempty"`
}

type Review struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	RestaurantID   string    `json:"restaurant_id"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	FoodRating     *int      `json:"food_rating,omitempty"`
	DeliveryRating *int      `json:"delivery_rating,omitempty"`
	ServiceRating  *int      `json:"service_rating,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ReviewerName   string    `json:"reviewer_name,omitempty"`
}

type UserProfile struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	AvatarURL          string   `json:"avatar_url,omitempty"`
	DateOfBirth        string   `json:"date_of_birth,omitempty"`
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
	FavoriteCuisines   []string `json:"favorite_cuisines,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

type DeliveryAddress struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Label        string `json:"label"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	IsDefault    bool   `json:"is_default"`
}

type Favorite struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	RestaurantID string      `json:"restaurant_id"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
}

// CartItem is one line in the in-memory cart. UnitPrice is the snapshot taken
// when the item was added; it must not track later menu price changes.
type CartItem struct {
	MenuItemID     string  `json:"menu_item_id"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int     `json:"quantity"`
	Note           string  `json:"note,omitempty"`
}

// User mirrors the identity record held by the auth backend.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Name             string `json:"name,omitempty"`
	EmailConfirmedAt string `json:"email_confirmed_at,omitempty"`
}

// RecommendationPrefs is the preference object embedded into the AI prompt.
type RecommendationPrefs struct {
	Cuisine string   `json:"cuisine,omitempty"`
	Dietary []string `json:"dietary,omitempty"`
	Budget  string   `json:"budget,omitempty"`
	Mood    string   `json:"mood,omitempty"`
}
