// Package cli wires the gateways and state containers into the bravonest
// command-line client.
package cli

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"bravonest/internal/config"
	"bravonest/internal/service"
	"bravonest/internal/storage"
)

// Compile-time wiring checks: the storage adapters satisfy the service
// interfaces they are injected as.
var (
	_ service.CatalogRepository = (*storage.RestClient)(nil)
	_ service.OrderRepository   = (*storage.RestClient)(nil)
	_ service.ProfileRepository = (*storage.RestClient)(nil)
	_ service.AuthAPI           = (*storage.AuthClient)(nil)
	_ service.GenerativeAPI     = (*storage.GenerativeClient)(nil)
	_ storage.TokenSource       = (*service.AuthService)(nil)
)

// App bundles the injected state holders and gateways every command uses.
// Nothing here is a package-level singleton.
type App struct {
	Config  config.Config
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Orders  *service.OrderService
	Profile *service.ProfileService
	Recs    *service.RecommendationService
	Cart    *service.Cart
}

func NewApp(cfg config.Config) *App {
	authClient := storage.NewAuthClient(cfg.BackendURL, cfg.BackendAPIKey, nil, cfg.RequestTimeout)
	auth := service.NewAuthService(authClient)

	rest := storage.NewRestClient(cfg.BackendURL, cfg.BackendAPIKey, nil, auth, cfg.RequestTimeout)
	auth.SetProfileRepository(rest)

	gen := storage.NewGenerativeClient(cfg.AIEndpoint, cfg.AIAPIKey, nil, cfg.RequestTimeout)

	return &App{
		Config:  cfg,
		Auth:    auth,
		Catalog: service.NewCatalogService(rest, auth),
		Orders:  service.NewOrderService(rest, auth),
		Profile: service.NewProfileService(rest, auth),
		Recs:    service.NewRecommendationService(gen),
		Cart:    service.NewCart(),
	}
}

// resumeSession resolves the initial session state from the exported access
// token, if any. Sessions stay volatile: nothing is written to disk.
func (a *App) resumeSession(ctx context.Context) {
	token := os.Getenv("BRAVONEST_ACCESS_TOKEN")
	if err := a.Auth.Resume(ctx, token); err != nil {
		log.Printf("[cli] session not resumed: %v", err)
	}
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "bravonest",
		Short: "Food ordering client",
		Long: `bravonest browses restaurants and menus, manages a cart, places and
tracks orders, and asks the AI assistant for recommendations. Set
BRAVONEST_ACCESS_TOKEN (printed by "bravonest login") for the commands
that need a signed-in session.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.resumeSession(cmd.Context())
		},
	}

	root.AddCommand(
		newRestaurantsCmd(app),
		newMenuCmd(app),
		newCategoriesCmd(app),
		newReviewsCmd(app),
		newReviewCmd(app),
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newOrdersCmd(app),
		newCheckoutCmd(app),
		newQRCmd(app),
		newTrackCmd(app),
		newProfileCmd(app),
		newAddressesCmd(app),
		newFavoritesCmd(app),
		newRecommendCmd(app),
		newAskCmd(app),
	)
	return root
}

// Execute builds the app from the environment and runs the CLI.
func Execute() error {
	app := NewApp(config.Load())
	return newRootCmd(app).Execute()
}
