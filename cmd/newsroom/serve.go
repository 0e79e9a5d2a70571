package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newsroom/internal/metrics"
	"newsroom/internal/publisher"
	"newsroom/internal/service"
	"newsroom/internal/web"
)

const serviceName = "newsroom"

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the public site and the admin area",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), ctx)
		},
	}
}

func serve(parent context.Context, cc *commandContext) error {
	cfg, logger := cc.cfg, cc.logger
	if cfg.Server.SessionSecret == "" {
		return errors.New("server.session_secret is required")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	var events service.Publisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	articles := service.NewArticleService(b.articles, events, cfg.Site.Catalog(), cfg.Site.ArticlePlaceholder, logger)
	podcasts := service.NewPodcastService(b.podcasts, events, cfg.Site.PodcastPlaceholder, logger)

	srv, err := web.NewServer(articles, podcasts, b.auth, web.Options{
		Site:          cfg.Site,
		SessionSecret: cfg.Server.SessionSecret,
		SecureCookie:  cfg.Server.SecureCookie,
	}, logger)
	if err != nil {
		return err
	}

	metrics.Init(serviceName, cfg.Backend)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server",
			"addr", cfg.Server.Addr,
			"backend", cfg.Backend,
			"events", cfg.RabbitMQ.Enabled(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("http server stopped")
	return nil
}
