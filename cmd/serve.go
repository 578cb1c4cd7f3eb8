package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/config"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/llm"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/server"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Server.Port = port
		}

		app := fx.New(
			fx.NopLogger,
			fx.Supply(cfg, cmd),
			fx.Provide(
				provideStore,
				provideLLM,
				newService,
				func(svc *quiz.Service) server.QuizService { return svc },
				server.NewHandler,
				server.NewEngine,
			),
			fx.Invoke(registerRoutesAndStartServer),
		)

		ctx := cmd.Context()
		if err := app.Start(ctx); err != nil {
			return err
		}

		select {
		case <-app.Done():
		case <-ctx.Done():
		}
		log.Info().Msg("shutting down")

		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.Stop(stopCtx)
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides WIKIQUIZ_SERVER_PORT)")
}

func provideStore(lc fx.Lifecycle, cmd *cobra.Command) (*store.Store, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return st.Close() },
	})
	return st, nil
}

func provideLLM(c *config.Config, st *store.Store) (llm.Provider, error) {
	return newProvider(context.Background(), c, st)
}

// registerRoutesAndStartServer mounts the API and ties the HTTP server to
// the fx lifecycle.
func registerRoutesAndStartServer(lc fx.Lifecycle, r *gin.Engine, h *server.Handler, c *config.Config) {
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + c.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Str("addr", srv.Addr).Msg("quiz API listening")
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}
