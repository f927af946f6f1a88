package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/VGOT23/rbac-project/internal/api"
	"github.com/VGOT23/rbac-project/internal/api/handler"
	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/service"
	"github.com/VGOT23/rbac-project/internal/infrastructure/queue"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		dispatcher := queue.NewAuditDispatcher(a.cfg.Audit.Workers, a.audits, a.log)
		dispatcher.Start(context.Background())
		defer dispatcher.Stop()

		e := api.NewRouter(api.Dependencies{
			Authenticator: authz.NewAuthenticator(a.users, a.tokens),
			AuthService:   a.auth,
			PostService:   service.NewPostService(a.posts, dispatcher, a.log),
			UserService:   service.NewUserService(a.users, a.posts, dispatcher, a.log),
			HealthChecks: map[string]handler.DependencyCheck{
				"mongodb": handler.MongoCheck(a.db),
				"redis":   handler.RedisCheck(a.redis),
			},
			Logger: a.log,
		})

		errCh := make(chan error, 1)
		go func() {
			a.log.Info().Str("port", a.cfg.Port).Msg("starting HTTP server")
			if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
