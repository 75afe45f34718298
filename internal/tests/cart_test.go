package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bravonest/internal/domain"
	"bravonest/internal/service"
)

func burgerItem(qty int) domain.CartItem {
	return domain.CartItem{
		MenuItemID:     "item-burger",
		RestaurantID:   "rest-1",
		RestaurantName: "Burger Barn",
		Name:           "Classic Burger",
		UnitPrice:      10.00,
		Quantity:       qty,
	}
}

func friesItem(qty int) domain.CartItem {
	return domain.CartItem{
		MenuItemID:     "item-fries",
		RestaurantID:   "rest-1",
		RestaurantName: "Burger Barn",
		Name:           "Fries",
		UnitPrice:      5.50,
		Quantity:       qty,
	}
}

func TestCart_AddItemValidation(t *testing.T) {
	tests := []struct {
		name    string
		item    domain.CartItem
		wantErr bool
	}{
		{name: "valid item", item: burgerItem(1), wantErr: false},
		{name: "missing menu item id", item: domain.CartItem{RestaurantID: "rest-1", Quantity: 1}, wantErr: true},
		{name: "zero quantity", item: domain.CartItem{MenuItemID: "x", RestaurantID: "rest-1", Quantity: 0}, wantErr: true},
		{name: "negative quantity", item: domain.CartItem{MenuItemID: "x", RestaurantID: "rest-1", Quantity: -2}, wantErr: true},
		{name: "negative price", item: domain.CartItem{MenuItemID: "x", RestaurantID: "rest-1", Quantity: 1, UnitPrice: -1}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cart := service.NewCart()
			err := cart.AddItem(testCase.item)
			if testCase.wantErr {
				assert.Error(t, err)
				assert.True(t, domain.IsKind(err, domain.KindValidation))
				assert.Empty(t, cart.Items())
			} else {
				assert.NoError(t, err)
				assert.Len(t, cart.Items(), 1)
			}
		})
	}
}

func TestCart_RejectsSecondRestaurant(t *testing.T) {
	cart := service.NewCart()
	assert.NoError(t, cart.AddItem(burgerItem(1)))

	other := domain.CartItem{
		MenuItemID:     "item-roll",
		RestaurantID:   "rest-2",
		RestaurantName: "Sushi Spot",
		Name:           "California Roll",
		UnitPrice:      8.00,
		Quantity:       1,
	}
	err := cart.AddItem(other)

	assert.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.Contains(t, err.Error(), "Burger Barn")
	assert.Equal(t, "rest-1", cart.RestaurantID())
	assert.Len(t, cart.Items(), 1)

	// Clearing releases the restaurant scope.
	cart.Clear()
	assert.NoError(t, cart.AddItem(other))
	assert.Equal(t, "rest-2", cart.RestaurantID())
}

func TestCart_MergesSameMenuItem(t *testing.T) {
	cart := service.NewCart()
	assert.NoError(t, cart.AddItem(burgerItem(2)))
	assert.NoError(t, cart.AddItem(burgerItem(3)))

	items := cart.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems())
}

func TestCart_Totals(t *testing.T) {
	cart := service.NewCart()
	assert.NoError(t, cart.AddItem(burgerItem(2)))
	assert.NoError(t, cart.AddItem(friesItem(1)))

	assert.Equal(t, 3, cart.TotalItems())
	assert.InDelta(t, 25.50, cart.TotalPrice(), 0.001)

	// Checkout total with fees on top of the cart subtotal.
	total := cart.TotalPrice() + 2.99 + 1.50
	assert.InDelta(t, 29.99, total, 0.001)
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := service.NewCart()
	assert.NoError(t, cart.AddItem(burgerItem(2)))
	assert.NoError(t, cart.AddItem(friesItem(1)))

	cart.UpdateQuantity("item-burger", 4)
	assert.Equal(t, 5, cart.TotalItems())

	// Zero or negative removes the line.
	cart.UpdateQuantity("item-fries", 0)
	assert.Len(t, cart.Items(), 1)
	cart.UpdateQuantity("item-burger", -1)
	assert.Empty(t, cart.Items())

	// Emptying the cart releases the restaurant scope too.
	assert.Equal(t, "", cart.RestaurantID())
}

func TestCart_RemoveLastItemResetsRestaurant(t *testing.T) {
	cart := service.NewCart()
	assert.NoError(t, cart.AddItem(burgerItem(1)))

	cart.RemoveItem("item-burger")

	assert.Empty(t, cart.Items())
	assert.Equal(t, "", cart.RestaurantID())
	assert.Equal(t, 0, cart.TotalItems())
	assert.InDelta(t, 0, cart.TotalPrice(), 0.001)
}

func TestCart_OrderItems(t *testing.T) {
	cart := service.NewCart()
	item := burgerItem(2)
	item.Note = "no onions"
	assert.NoError(t, cart.AddItem(item))
	assert.NoError(t, cart.AddItem(friesItem(1)))

	inputs := cart.OrderItems()

	assert.Len(t, inputs, 2)
	assert.Equal(t, domain.OrderItemInput{
		MenuItemID: "item-burger",
		Quantity:   2,
		UnitPrice:  10.00,
		Note:       "no onions",
	}, inputs[0])
	assert.Equal(t, "item-fries", inputs[1].MenuItemID)
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	cart := service.NewCart()
	assert.NoError(t, cart.AddItem(burgerItem(1)))

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.TotalItems())
}
