package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brg8607/lsm-frontend/internal/stubserver"
)

// newStubCmd starts the in-memory fake backend for local demos and manual
// testing of the client against a known dataset.
func newStubCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run the local stub backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStub(cmd.Context(), port)
		},
	}
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "3000"
	}
	cmd.Flags().StringVar(&port, "port", envPort, "port to listen on")
	return cmd
}

func runStub(ctx context.Context, port string) error {
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      stubserver.New().Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("stub backend listening on :%s (admin@lsm.mx/admin123, ana@lsm.mx/hola123)", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("stub backend failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down stub backend...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down stub backend...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
