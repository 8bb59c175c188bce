package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/brg8607/lsm-frontend/internal/app"
	"github.com/brg8607/lsm-frontend/internal/config"
	"github.com/brg8607/lsm-frontend/internal/infra/file"
	"github.com/brg8607/lsm-frontend/internal/infra/memory"
	redisstore "github.com/brg8607/lsm-frontend/internal/infra/redis"
	"github.com/brg8607/lsm-frontend/internal/rest"
)

var (
	configPath string
	baseURL    string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("LSM_CONFIG")
	if envConfig == "" {
		envConfig = "config.yaml"
	}
	envURL := os.Getenv("LSM_API_URL")

	cmd := &cobra.Command{
		Use:   "lsm",
		Short: "Sign-language vocabulary trainer client",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", envURL, "backend base URL (overrides config)")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newGuestCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newHomeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newQuizCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newStubCmd())
	return cmd
}

// buildController wires the session store, API client and controller from config.
func buildController(ctx context.Context) (*app.Controller, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	store, err := buildSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	tokens := rest.TokenSourceFunc(func(ctx context.Context) (string, error) {
		session, err := store.Read(ctx)
		if err != nil {
			return "", err
		}
		return session.Token, nil
	})
	client := rest.NewClient(cfg.API.BaseURL, tokens, config.TTLDuration(cfg.API.Timeout, 15*time.Second))

	ctrl := app.NewController(store, client, app.Options{
		PointsPerQuestion: cfg.Quiz.PointsPerQuestion,
		PassScore:         cfg.Quiz.PassScore,
		TotalQuestions:    cfg.Quiz.TotalQuestions,
	})
	if err := ctrl.RestoreSession(ctx); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func buildSessionStore(cfg config.Config) (app.SessionStore, error) {
	switch cfg.Session.Backend {
	case "", "file":
		return file.NewSessionStore(cfg.Session.File.Path), nil
	case "memory":
		return memory.NewSessionStore(), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		ttl := config.TTLDuration(cfg.Session.Redis.TTL, 0)
		return redisstore.NewSessionStore(client, cfg.Session.Redis.Namespace, ttl), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
