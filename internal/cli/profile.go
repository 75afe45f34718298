package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bravonest/internal/domain"
	"bravonest/internal/service"
)

func newProfileCmd(app *App) *cobra.Command {
	var name, phone string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && phone == "" {
				profile, err := app.Profile.GetProfile(cmd.Context())
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err))
				}
				if profile == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Set one with --name and --phone.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", profile.Name, service.FormatPhone(profile.Phone))
				return nil
			}

			if phone != "" {
				if err := service.ValidatePhone(phone); err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err))
				}
				phone = service.CleanPhone(phone)
			}
			patch := domain.UserProfile{Name: name, Phone: phone}
			profile, err := app.Profile.UpsertProfile(cmd.Context(), patch)
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved for %s.\n", profile.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&phone, "phone", "", "10-digit phone number")
	return cmd
}

func newAddressesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "List your delivery addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			addresses, err := app.Profile.ListAddresses(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if len(addresses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No addresses saved.")
				return nil
			}
			for _, a := range addresses {
				marker := " "
				if a.IsDefault {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s, %s, %s %s\n",
					marker, a.Label, a.AddressLine1, a.City, a.State, a.ZipCode)
			}
			return nil
		},
	}
	cmd.AddCommand(newAddressAddCmd(app))
	return cmd
}

func newAddressAddCmd(app *App) *cobra.Command {
	var input domain.AddressInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new delivery address",
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := app.Profile.CreateAddress(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Address %q saved.\n", address.Label)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Label, "label", "Home", "short label, e.g. Home or Work")
	cmd.Flags().StringVar(&input.AddressLine1, "line1", "", "street address")
	cmd.Flags().StringVar(&input.AddressLine2, "line2", "", "apartment or suite")
	cmd.Flags().StringVar(&input.City, "city", "", "city")
	cmd.Flags().StringVar(&input.State, "state", "", "state")
	cmd.Flags().StringVar(&input.ZipCode, "zip", "", "zip code")
	cmd.Flags().BoolVar(&input.IsDefault, "default", false, "make this the default address")
	cmd.MarkFlagRequired("line1")
	cmd.MarkFlagRequired("city")
	cmd.MarkFlagRequired("state")
	cmd.MarkFlagRequired("zip")
	return cmd
}

func newFavoritesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			favorites, err := app.Profile.ListFavorites(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if len(favorites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
				return nil
			}
			for _, f := range favorites {
				name := f.RestaurantID
				if f.Restaurant != nil {
					name = f.Restaurant.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", f.RestaurantID, name)
			}
			return nil
		},
	}
	cmd.AddCommand(newFavoriteToggleCmd(app))
	return cmd
}

func newFavoriteToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <restaurant-id>",
		Short: "Add or remove a restaurant from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			favorited, err := app.Profile.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if favorited {
				fmt.Fprintln(cmd.OutOrStdout(), "Added to favorites.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Removed from favorites.")
			}
			return nil
		},
	}
}
