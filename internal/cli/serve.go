package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	transport "quiz-host/internal/transport/http"
)

func newServeCmd(opts *rootOptions, v *viper.Viper) *cobra.Command {
	var (
		port  string
		fresh bool
	)
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Serve the operator and display screens over websocket",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), opts, port, fresh)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on, overrides server.port (env: QUIZHOST_PORT)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved selection checkpoint (env: QUIZHOST_FRESH)")
	bindEnv(v, cmd.Flags())
	return cmd
}

func runServer(ctx context.Context, opts *rootOptions, portFlag string, fresh bool) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	rt, err := buildRuntime(ctx, cfg, logger, fresh)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.ctrl.Start(ctx); err != nil {
		return err
	}

	ws := transport.NewWSHandler(rt.ctrl, rt.hub, logger)
	router := transport.NewRouter(transport.RouterConfig{
		Version:   Version,
		PublicURL: cfg.Server.PublicURL,
	}, ws, logger)

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.ctrl.Scoreboard().Run(gctx, rt.interval)
		return nil
	})
	g.Go(func() error {
		logger.Info("starting quiz host", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
