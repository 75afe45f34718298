package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bravonest/internal/domain"
	"bravonest/internal/service"
)

func newOrdersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.Orders.ListUserOrders(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders yet.")
				return nil
			}
			for _, o := range orders {
				name := ""
				if o.Restaurant != nil {
					name = o.Restaurant.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s $%.2f  %s\n", o.ID, o.Status, o.Total, name)
			}
			return nil
		},
	}
}

// parseItemFlag splits a "menu-item-id:quantity" flag value.
func parseItemFlag(raw string) (string, int, error) {
	id, qty, ok := strings.Cut(raw, ":")
	if !ok {
		return "", 0, fmt.Errorf("invalid item %q, expected menu-item-id:quantity", raw)
	}
	n, err := strconv.Atoi(qty)
	if err != nil || n <= 0 {
		return "", 0, fmt.Errorf("invalid quantity in %q", raw)
	}
	return id, n, nil
}

func newCheckoutCmd(app *App) *cobra.Command {
	var (
		restaurantID string
		items        []string
		deliveryFee  float64
		tax          float64
		tip          float64
		payment      string
		instructions string
	)
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Build a cart from menu items and place the order",
		RunE: func(cmd *cobra.Command, args []string) error {
			restaurant, err := app.Catalog.GetRestaurant(cmd.Context(), restaurantID)
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			menu, err := app.Catalog.ListMenuItems(cmd.Context(), restaurantID)
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			byID := make(map[string]domain.MenuItem, len(menu))
			for _, item := range menu {
				byID[item.ID] = item
			}

			app.Cart.Clear()
			for _, raw := range items {
				id, qty, err := parseItemFlag(raw)
				if err != nil {
					return err
				}
				item, ok := byID[id]
				if !ok {
					return fmt.Errorf("menu item %s not found at %s", id, restaurant.Name)
				}
				cartItem := domain.CartItem{
					MenuItemID:     item.ID,
					RestaurantID:   restaurantID,
					RestaurantName: restaurant.Name,
					Name:           item.Name,
					UnitPrice:      item.Price,
					Quantity:       qty,
				}
				if err := app.Cart.AddItem(cartItem); err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err))
				}
			}

			subtotal := app.Cart.TotalPrice()
			input := domain.OrderInput{
				RestaurantID:        restaurantID,
				Items:               app.Cart.OrderItems(),
				Subtotal:            subtotal,
				DeliveryFee:         deliveryFee,
				Tax:                 tax,
				Tip:                 tip,
				Total:               subtotal + deliveryFee + tax + tip,
				PaymentMethod:       payment,
				SpecialInstructions: instructions,
			}
			order, err := app.Orders.Create(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			app.Cart.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed, total $%.2f.\n", order.ID, order.Total)
			if order.EstimatedDeliveryTime != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Estimated delivery %s.\n", order.EstimatedDeliveryTime.Format(time.Kitchen))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&restaurantID, "restaurant", "", "restaurant to order from")
	cmd.Flags().StringArrayVar(&items, "item", nil, "menu-item-id:quantity, repeatable")
	cmd.Flags().Float64Var(&deliveryFee, "delivery-fee", 2.99, "delivery fee")
	cmd.Flags().Float64Var(&tax, "tax", 0, "tax amount")
	cmd.Flags().Float64Var(&tip, "tip", 0, "tip amount")
	cmd.Flags().StringVar(&payment, "payment", "card", "payment method")
	cmd.Flags().StringVar(&instructions, "instructions", "", "special instructions")
	cmd.MarkFlagRequired("restaurant")
	cmd.MarkFlagRequired("item")
	return cmd
}

func newQRCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "qr <order-id>",
		Short: "Write the pickup QR code for an order as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := app.Orders.PickupQR(args[0])
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("write qr code: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "QR code written to %s.\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "pickup.png", "output file")
	return cmd
}

func newTrackCmd(app *App) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "track <order-id>",
		Short: "Simulate live status updates for an order until pickup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				interval = app.Config.TrackerInterval
			}
			tracker := service.NewStatusTracker(args[0], interval, nil)
			defer tracker.Stop()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			tracker.Start(ctx)

			seen := 0
			ticker := time.NewTicker(interval / 2)
			defer ticker.Stop()
			for {
				history := tracker.History()
				for _, update := range history[seen:] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s %s (eta %s)\n",
						update.Timestamp.Format(time.Kitchen), update.Status, update.Message, tracker.ETA())
				}
				seen = len(history)
				if tracker.Current() == domain.StatusPickedUp {
					return nil
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "time between simulated advances")
	return cmd
}
