/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the claims calculation engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags (cobra)
  2. Initialize SQLite repository
  3. Create API handler with dependencies
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  --port        HTTP server port (default: 8080)
  --db          SQLite database path (default: claims.db, or CLAIMS_DB
                env var). Use ":memory:" for an in-memory database
  --log-format  "console" or "json" (default: console)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./claims-server --db="./data/claims.db"

  # Run with in-memory database on another port
  ./claims-server --db=":memory:" --port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/claims-engine/api"
	"github.com/warp/claims-engine/logging"
	"github.com/warp/claims-engine/store/sqlite"
)

func main() {
	var (
		port      int
		dbPath    string
		logFormat string
	)

	root := &cobra.Command{
		Use:   "claims-server",
		Short: "Healthcare claims and fee calculation engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(port, dbPath, logFormat)
		},
	}
	root.Flags().IntVar(&port, "port", 8080, "HTTP server port")
	root.Flags().StringVar(&dbPath, "db", defaultDBPath(), "SQLite database path (\":memory:\" for in-memory)")
	root.Flags().StringVar(&logFormat, "log-format", "console", "log format: console or json")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultDBPath() string {
	if p := os.Getenv("CLAIMS_DB"); p != "" {
		return p
	}
	return "claims.db"
}

func run(port int, dbPath, logFormat string) error {
	log := logging.Setup(logFormat)

	repo, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repo.Close()

	handler := api.NewHandler(repo, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", port).Str("db", dbPath).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
