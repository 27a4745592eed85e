package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jamesprial/gameshelf/internal/auth"
	"github.com/jamesprial/gameshelf/internal/config"
	"github.com/jamesprial/gameshelf/internal/games"
	"github.com/jamesprial/gameshelf/internal/graphql"
	"github.com/jamesprial/gameshelf/internal/safety"
	"github.com/jamesprial/gameshelf/internal/tools"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the games tools over MCP (streamable HTTP)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")
	return cmd
}

// buildMCPHandler wires the game and GraphQL tools into an MCP server
// behind bearer auth.
func (a *app) buildMCPHandler(client graphql.Client, mgr games.GameManager, audit *safety.AuditLogger) (http.Handler, []tools.Registration) {
	filter := safety.NewFilter(a.cfg.Safety.Games.Allowlist, a.cfg.Safety.Games.Denylist)
	confirm := safety.NewConfirmationTracker(games.DestructiveTools)

	var registrations []tools.Registration
	registrations = append(registrations, games.GameTools(mgr, filter, confirm, audit)...)
	registrations = append(registrations, graphql.GraphQLTools(client, audit)...)

	mcpServer := server.NewMCPServer(
		"gameshelf",
		version,
		server.WithToolCapabilities(false),
	)
	tools.RegisterAll(mcpServer, registrations)

	httpHandler := server.NewStreamableHTTPServer(mcpServer)
	return auth.NewAuthMiddleware(a.cfg.Server.AuthToken, a.logger.Named("auth"))(httpHandler), registrations
}

func (a *app) serve(ctx context.Context) error {
	log := a.logger

	tokenBefore := a.cfg.Server.AuthToken
	token, err := config.EnsureAuthToken(a.cfg)
	if err != nil {
		log.Warn("could not generate auth token, running without authentication", zap.Error(err))
	} else if tokenBefore == "" {
		log.Info("generated auth token (set GAMESHELF_AUTH_TOKEN to persist)", zap.String("token", token))
	}

	audit, auditCloser, err := safety.OpenAuditLog(a.cfg.Audit)
	if err != nil {
		log.Warn("audit logging disabled", zap.Error(err))
	}
	if auditCloser != nil {
		defer func() { _ = auditCloser.Close() }()
	}

	client, mgr, err := a.newManager()
	if err != nil {
		return err
	}

	handler, registrations := a.buildMCPHandler(client, mgr, audit)

	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("gameshelf MCP server listening",
			zap.String("addr", addr),
			zap.String("graphql_url", client.URL()),
			zap.Strings("tools", tools.Names(registrations)),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gameshelf: http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
	return nil
}
