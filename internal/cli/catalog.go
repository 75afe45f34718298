package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bravonest/internal/domain"
)

func newRestaurantsCmd(app *App) *cobra.Command {
	var (
		featured bool
		cuisine  string
		search   string
	)
	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "List open restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.RestaurantFilter{
				Featured: featured,
				Cuisine:  cuisine,
				Search:   search,
			}
			restaurants, err := app.Catalog.ListRestaurants(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if len(restaurants) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No restaurants found.")
				return nil
			}
			for _, r := range restaurants {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s) %.1f★ %d-%d min · $%.2f delivery\n",
					r.ID, r.Name, r.CuisineType, r.Rating, r.DeliveryTimeMin, r.DeliveryTimeMax, r.DeliveryFee)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured restaurants")
	cmd.Flags().StringVar(&cuisine, "cuisine", "", "filter by cuisine type")
	cmd.Flags().StringVar(&search, "search", "", "match against name or cuisine")
	return cmd
}

func newMenuCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu <restaurant-id>",
		Short: "List a restaurant's available menu items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Catalog.ListMenuItems(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No menu items available.")
				return nil
			}
			for _, item := range items {
				category := ""
				if item.Category != nil {
					category = " [" + item.Category.Name + "]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s $%.2f%s\n", item.ID, item.Name, item.Price, category)
			}
			return nil
		},
	}
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List menu categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Catalog.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			for _, c := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func newReviewsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reviews <restaurant-id>",
		Short: "Show the newest reviews for a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := app.Catalog.ListReviews(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if len(reviews) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reviews yet.")
				return nil
			}
			for _, r := range reviews {
				fmt.Fprintf(cmd.OutOrStdout(), "%d★  %s\n", r.Rating, r.Comment)
			}
			return nil
		},
	}
}

func newReviewCmd(app *App) *cobra.Command {
	var (
		rating  int
		comment string
	)
	cmd := &cobra.Command{
		Use:   "review <restaurant-id>",
		Short: "Submit a review for a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			review, err := app.Catalog.CreateReview(cmd.Context(), domain.ReviewInput{
				RestaurantID: args[0],
				Rating:       rating,
				Comment:      comment,
			})
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review %s submitted.\n", review.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 5, "rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "review text")
	return cmd
}
