package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bravonest/internal/domain"
)

func newRecommendCmd(app *App) *cobra.Command {
	var prefs domain.RecommendationPrefs
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Ask the assistant for food recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := app.Recs.GetRecommendations(cmd.Context(), prefs)
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&prefs.Cuisine, "cuisine", "", "preferred cuisine")
	cmd.Flags().StringSliceVar(&prefs.Dietary, "dietary", nil, "dietary restrictions")
	cmd.Flags().StringVar(&prefs.Budget, "budget", "", "budget, e.g. $ or $$$")
	cmd.Flags().StringVar(&prefs.Mood, "mood", "", "what you are in the mood for")
	return cmd
}

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Chat with the food assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := app.Recs.GetChatResponse(cmd.Context(), strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
