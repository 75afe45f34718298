// Package backendtest runs an in-memory stand-in for the hosted data+auth
// backend, covering exactly the CRUD surface the client emits. Tests point a
// RestClient or AuthClient at Server.URL().
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"bravonest/internal/domain"
)

var signingKey = []byte("backendtest-secret")

type account struct {
	ID        string
	Email     string
	Password  string
	Name      string
	Phone     string
	Confirmed bool
}

// Server is the fake backend. Exported knobs induce failures for tests.
type Server struct {
	mu sync.Mutex

	restaurants []domain.Restaurant
	menuItems   []domain.MenuItem
	categories  []domain.Category
	orders      []domain.Order
	orderItems  []domain.OrderItem
	reviews     []domain.Review
	profiles    map[string]domain.UserProfile
	favorites   []domain.Favorite
	addresses   []domain.DeliveryAddress
	accounts    map[string]*account
	tokens      map[string]string
	nextID      int

	// FailOrderItems makes every order_items insert fail, to exercise
	// the order-creation compensation path.
	FailOrderItems bool
	// AutoConfirm controls whether sign-up returns a confirmed identity
	// with a live session.
	AutoConfirm bool

	srv *httptest.Server
}

func New() *Server {
	s := &Server{
		profiles:    make(map[string]domain.UserProfile),
		accounts:    make(map[string]*account),
		tokens:      make(map[string]string),
		AutoConfirm: true,
	}

	r := mux.NewRouter()
	r.HandleFunc("/auth/v1/token", s.handleToken).Methods("POST")
	r.HandleFunc("/auth/v1/signup", s.handleSignup).Methods("POST")
	r.HandleFunc("/auth/v1/logout", s.handleLogout).Methods("POST")
	r.HandleFunc("/auth/v1/user", s.handleGetUser).Methods("GET")

	r.HandleFunc("/rest/v1/restaurants", s.handleRestaurants).Methods("GET")
	r.HandleFunc("/rest/v1/menu_items", s.handleMenuItems).Methods("GET")
	r.HandleFunc("/rest/v1/categories", s.handleCategories).Methods("GET")
	r.HandleFunc("/rest/v1/orders", s.handleOrdersGet).Methods("GET")
	r.HandleFunc("/rest/v1/orders", s.handleOrdersPost).Methods("POST")
	r.HandleFunc("/rest/v1/orders", s.handleOrdersDelete).Methods("DELETE")
	r.HandleFunc("/rest/v1/order_items", s.handleOrderItemsPost).Methods("POST")
	r.HandleFunc("/rest/v1/reviews", s.handleReviewsGet).Methods("GET")
	r.HandleFunc("/rest/v1/reviews", s.handleReviewsPost).Methods("POST")
	r.HandleFunc("/rest/v1/user_profiles", s.handleProfilesGet).Methods("GET")
	r.HandleFunc("/rest/v1/user_profiles", s.handleProfilesUpsert).Methods("POST")
	r.HandleFunc("/rest/v1/favorites", s.handleFavoritesGet).Methods("GET")
	r.HandleFunc("/rest/v1/favorites", s.handleFavoritesPost).Methods("POST")
	r.HandleFunc("/rest/v1/favorites", s.handleFavoritesDelete).Methods("DELETE")
	r.HandleFunc("/rest/v1/delivery_addresses", s.handleAddressesGet).Methods("GET")
	r.HandleFunc("/rest/v1/delivery_addresses", s.handleAddressesPost).Methods("POST")
	r.HandleFunc("/rest/v1/delivery_addresses", s.handleAddressesPatch).Methods("PATCH")

	s.srv = httptest.NewServer(cors.Default().Handler(r))
	return s
}

func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

func (s *Server) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

// --- seeding ---

func (s *Server) SeedRestaurant(r domain.Restaurant) domain.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = s.id("rest")
	}
	s.restaurants = append(s.restaurants, r)
	return r
}

func (s *Server) SeedMenuItem(m domain.MenuItem) domain.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = s.id("item")
	}
	s.menuItems = append(s.menuItems, m)
	return m
}

func (s *Server) SeedCategory(c domain.Category) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.id("cat")
	}
	s.categories = append(s.categories, c)
	return c
}

func (s *Server) SeedReview(r domain.Review) domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = s.id("rev")
	}
	s.reviews = append(s.reviews, r)
	return r
}

// SeedAccount registers an identity and returns its user id.
func (s *Server) SeedAccount(email, password, name, phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id("user")
	s.accounts[email] = &account{
		ID:        id,
		Email:     email,
		Password:  password,
		Name:      name,
		Phone:     phone,
		Confirmed: true,
	}
	return id
}

// IssueToken mints a signed token for a seeded account, as the auth backend
// would after sign-in.
func (s *Server) IssueToken(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[email]
	if !ok {
		return "", fmt.Errorf("no account for %s", email)
	}
	return s.mintTokenLocked(acct)
}

func (s *Server) mintTokenLocked(acct *account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   acct.ID,
		"email": acct.Email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		return "", err
	}
	s.tokens[token] = acct.ID
	return token, nil
}

// Orders returns a snapshot of stored order rows.
func (s *Server) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]domain.Order, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// OrderItems returns a snapshot of stored order item rows.
func (s *Server) OrderItems() []domain.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.OrderItem, len(s.orderItems))
	copy(items, s.orderItems)
	return items
}

// Addresses returns a snapshot of stored delivery addresses.
func (s *Server) Addresses() []domain.DeliveryAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	addresses := make([]domain.DeliveryAddress, len(s.addresses))
	copy(addresses, s.addresses)
	return addresses
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// eqParam returns the value of an eq. filter, or "" when absent.
func eqParam(r *http.Request, column string) string {
	v := r.URL.Query().Get(column)
	if strings.HasPrefix(v, "eq.") {
		return strings.TrimPrefix(v, "eq.")
	}
	return ""
}

func limitParam(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// orSearch extracts the search term from the
// or=(name.ilike.*term*,cuisine_type.ilike.*term*) filter shape.
func orSearch(r *http.Request) string {
	v := r.URL.Query().Get("or")
	if v == "" {
		return ""
	}
	start := strings.Index(v, "ilike.*")
	if start < 0 {
		return ""
	}
	rest := v[start+len("ilike.*"):]
	end := strings.Index(rest, "*")
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func (s *Server) userFromRequest(r *http.Request) (string, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	return id, ok
}

// --- auth handlers ---

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("grant_type") != "password" {
		writeError(w, http.StatusBadRequest, "unsupported grant type")
		return
	}
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[creds.Email]
	if !ok || acct.Password != creds.Password {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "Invalid login credentials")
		return
	}
	token, err := s.mintTokenLocked(acct)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mint token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token":  token,
		"refresh_token": "refresh-" + token[:12],
		"expires_in":    3600,
		"user":          s.authUserPayload(acct),
	})
}

func (s *Server) authUserPayload(acct *account) map[string]interface{} {
	payload := map[string]interface{}{
		"id":    acct.ID,
		"email": acct.Email,
		"user_metadata": map[string]string{
			"name":  acct.Name,
			"phone": acct.Phone,
		},
	}
	if acct.Confirmed {
		payload["email_confirmed_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	return payload
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string            `json:"email"`
		Password string            `json:"password"`
		Data     map[string]string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusUnprocessableEntity, "User already registered")
		return
	}
	acct := &account{
		ID:        s.id("user"),
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Data["name"],
		Phone:     req.Data["phone"],
		Confirmed: s.AutoConfirm,
	}
	s.accounts[req.Email] = acct

	if !s.AutoConfirm {
		payload := s.authUserPayload(acct)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, payload)
		return
	}

	token, err := s.mintTokenLocked(acct)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mint token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token":  token,
		"refresh_token": "refresh-" + token[:12],
		"expires_in":    3600,
		"user":          s.authUserPayload(acct),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	userID, ok := s.tokens[token]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	for _, acct := range s.accounts {
		if acct.ID == userID {
			payload := s.authUserPayload(acct)
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, payload)
			return
		}
	}
	s.mu.Unlock()
	writeError(w, http.StatusUnauthorized, "invalid token")
}

// --- data handlers ---

func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(orSearch(r))
	cuisine := eqParam(r, "cuisine_type")
	id := eqParam(r, "id")
	featured := eqParam(r, "is_featured") == "true"
	openOnly := eqParam(r, "is_open") == "true"

	var out []domain.Restaurant
	for _, rest := range s.restaurants {
		if openOnly && !rest.IsOpen {
			continue
		}
		if featured && !rest.IsFeatured {
			continue
		}
		if cuisine != "" && rest.CuisineType != cuisine {
			continue
		}
		if id != "" && rest.ID != id {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rest.Name), search) &&
			!strings.Contains(strings.ToLower(rest.CuisineType), search) {
			continue
		}
		out = append(out, rest)
	}

	if strings.HasPrefix(r.URL.Query().Get("order"), "rating.desc") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	if limit := limitParam(r); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMenuItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restaurantID := eqParam(r, "restaurant_id")
	availableOnly := eqParam(r, "is_available") == "true"
	embedCategory := strings.Contains(r.URL.Query().Get("select"), "categories")

	var out []domain.MenuItem
	for _, item := range s.menuItems {
		if restaurantID != "" && item.RestaurantID != restaurantID {
			continue
		}
		if availableOnly && !item.IsAvailable {
			continue
		}
		if embedCategory {
			for i := range s.categories {
				if s.categories[i].ID == item.CategoryID {
					cat := s.categories[i]
					item.Category = &cat
					break
				}
			}
		}
		out = append(out, item)
	}

	if strings.HasPrefix(r.URL.Query().Get("order"), "is_popular.desc") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].IsPopular && !out[j].IsPopular })
	}
	if out == nil {
		out = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	if strings.HasPrefix(r.URL.Query().Get("order"), "name") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOrdersGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := eqParam(r, "user_id")
	embed := strings.Contains(r.URL.Query().Get("select"), "order_items")

	var out []domain.Order
	for _, order := range s.orders {
		if userID != "" && order.UserID != userID {
			continue
		}
		if embed {
			for i := range s.restaurants {
				if s.restaurants[i].ID == order.RestaurantID {
					rest := s.restaurants[i]
					order.Restaurant = &rest
					break
				}
			}
			for _, item := range s.orderItems {
				if item.OrderID != order.ID {
					continue
				}
				for i := range s.menuItems {
					if s.menuItems[i].ID == item.MenuItemID {
						menuItem := s.menuItems[i]
						item.MenuItem = &menuItem
						break
					}
				}
				order.Items = append(order.Items, item)
			}
		}
		out = append(out, order)
	}

	if strings.HasPrefix(r.URL.Query().Get("order"), "created_at.desc") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	if out == nil {
		out = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOrdersPost(w http.ResponseWriter, r *http.Request) {
	var row struct {
		UserID                string  `json:"user_id"`
		RestaurantID          string  `json:"restaurant_id"`
		Subtotal              float64 `json:"subtotal"`
		DeliveryFee           float64 `json:"delivery_fee"`
		ServiceFee            float64 `json:"service_fee"`
		Tax                   float64 `json:"tax"`
		Tip                   float64 `json:"tip"`
		Total                 float64 `json:"total"`
		PaymentMethod         string  `json:"payment_method"`
		SpecialInstructions   string  `json:"special_instructions"`
		EstimatedDeliveryTime string  `json:"estimated_delivery_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order payload")
		return
	}

	s.mu.Lock()
	order := domain.Order{
		ID:                  s.id("order"),
		UserID:              row.UserID,
		RestaurantID:        row.RestaurantID,
		Status:              domain.StatusPending,
		Subtotal:            row.Subtotal,
		DeliveryFee:         row.DeliveryFee,
		ServiceFee:          row.ServiceFee,
		Tax:                 row.Tax,
		Tip:                 row.Tip,
		Total:               row.Total,
		PaymentMethod:       row.PaymentMethod,
		SpecialInstructions: row.SpecialInstructions,
		CreatedAt:           time.Now(),
	}
	if row.EstimatedDeliveryTime != "" {
		if t, err := time.Parse(time.RFC3339, row.EstimatedDeliveryTime); err == nil {
			order.EstimatedDeliveryTime = &t
		}
	}
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, []domain.Order{order})
}

func (s *Server) handleOrdersDelete(w http.ResponseWriter, r *http.Request) {
	id := eqParam(r, "id")
	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOrderItemsPost(w http.ResponseWriter, r *http.Request) {
	if s.FailOrderItems {
		writeError(w, http.StatusInternalServerError, "order items rejected")
		return
	}
	var rows []struct {
		OrderID             string  `json:"order_id"`
		MenuItemID          string  `json:"menu_item_id"`
		Quantity            int     `json:"quantity"`
		UnitPrice           float64 `json:"unit_price"`
		TotalPrice          float64 `json:"total_price"`
		SpecialInstructions string  `json:"special_instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order items payload")
		return
	}

	s.mu.Lock()
	created := make([]domain.OrderItem, 0, len(rows))
	for _, row := range rows {
		item := domain.OrderItem{
			ID:                  s.id("oi"),
			OrderID:             row.OrderID,
			MenuItemID:          row.MenuItemID,
			Quantity:            row.Quantity,
			UnitPrice:           row.UnitPrice,
			TotalPrice:          row.TotalPrice,
			SpecialInstructions: row.SpecialInstructions,
		}
		s.orderItems = append(s.orderItems, item)
		created = append(created, item)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleReviewsGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restaurantID := eqParam(r, "restaurant_id")
	var out []domain.Review
	for _, rev := range s.reviews {
		if restaurantID != "" && rev.RestaurantID != restaurantID {
			continue
		}
		out = append(out, rev)
	}
	if strings.HasPrefix(r.URL.Query().Get("order"), "created_at.desc") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	if limit := limitParam(r); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReviewsPost(w http.ResponseWriter, r *http.Request) {
	var rev domain.Review
	if err := json.NewDecoder(r.Body).Decode(&rev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid review payload")
		return
	}
	s.mu.Lock()
	rev.ID = s.id("rev")
	rev.CreatedAt = time.Now()
	s.reviews = append(s.reviews, rev)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, []domain.Review{rev})
}

func (s *Server) handleProfilesGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := eqParam(r, "id")
	if profile, ok := s.profiles[id]; ok {
		writeJSON(w, http.StatusOK, []domain.UserProfile{profile})
		return
	}
	writeJSON(w, http.StatusOK, []domain.UserProfile{})
}

func (s *Server) handleProfilesUpsert(w http.ResponseWriter, r *http.Request) {
	var incoming domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}
	if incoming.ID == "" {
		writeError(w, http.StatusBadRequest, "profile id is required")
		return
	}

	s.mu.Lock()
	merged := incoming
	if existing, ok := s.profiles[incoming.ID]; ok {
		merged = existing
		if incoming.Name != "" {
			merged.Name = incoming.Name
		}
		if incoming.Phone != "" {
			merged.Phone = incoming.Phone
		}
		if incoming.AvatarURL != "" {
			merged.AvatarURL = incoming.AvatarURL
		}
		if incoming.DateOfBirth != "" {
			merged.DateOfBirth = incoming.DateOfBirth
		}
		if incoming.DietaryPreferences != nil {
			merged.DietaryPreferences = incoming.DietaryPreferences
		}
		if incoming.FavoriteCuisines != nil {
			merged.FavoriteCuisines = incoming.FavoriteCuisines
		}
		merged.UpdatedAt = incoming.UpdatedAt
	}
	s.profiles[incoming.ID] = merged
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, []domain.UserProfile{merged})
}

func (s *Server) handleFavoritesGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := eqParam(r, "user_id")
	restaurantID := eqParam(r, "restaurant_id")
	embed := strings.Contains(r.URL.Query().Get("select"), "restaurants")

	var out []domain.Favorite
	for _, fav := range s.favorites {
		if userID != "" && fav.UserID != userID {
			continue
		}
		if restaurantID != "" && fav.RestaurantID != restaurantID {
			continue
		}
		if embed {
			for i := range s.restaurants {
				if s.restaurants[i].ID == fav.RestaurantID {
					rest := s.restaurants[i]
					fav.Restaurant = &rest
					break
				}
			}
		}
		out = append(out, fav)
	}
	if out == nil {
		out = []domain.Favorite{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFavoritesPost(w http.ResponseWriter, r *http.Request) {
	var fav domain.Favorite
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite payload")
		return
	}
	s.mu.Lock()
	fav.ID = s.id("fav")
	s.favorites = append(s.favorites, fav)
	s.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleFavoritesDelete(w http.ResponseWriter, r *http.Request) {
	id := eqParam(r, "id")
	s.mu.Lock()
	for i := range s.favorites {
		if s.favorites[i].ID == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddressesGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := eqParam(r, "user_id")
	var out []domain.DeliveryAddress
	for _, addr := range s.addresses {
		if userID != "" && addr.UserID != userID {
			continue
		}
		out = append(out, addr)
	}
	if strings.HasPrefix(r.URL.Query().Get("order"), "is_default.desc") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].IsDefault && !out[j].IsDefault })
	}
	if out == nil {
		out = []domain.DeliveryAddress{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddressesPost(w http.ResponseWriter, r *http.Request) {
	var addr domain.DeliveryAddress
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid address payload")
		return
	}
	s.mu.Lock()
	addr.ID = s.id("addr")
	s.addresses = append(s.addresses, addr)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, []domain.DeliveryAddress{addr})
}

func (s *Server) handleAddressesPatch(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		IsDefault *bool `json:"is_default"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid patch payload")
		return
	}

	userID := eqParam(r, "user_id")
	onlyDefault := eqParam(r, "is_default") == "true"

	s.mu.Lock()
	for i := range s.addresses {
		if userID != "" && s.addresses[i].UserID != userID {
			continue
		}
		if onlyDefault && !s.addresses[i].IsDefault {
			continue
		}
		if patch.IsDefault != nil {
			s.addresses[i].IsDefault = *patch.IsDefault
		}
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
