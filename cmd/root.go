package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/steamlens/internal/aggregate"
	"github.com/lepinkainen/steamlens/internal/cache"
	"github.com/lepinkainen/steamlens/internal/config"
	"github.com/lepinkainen/steamlens/internal/server"
	"github.com/lepinkainen/steamlens/internal/steam"
)

// CLI represents the complete command structure for the steamlens application
type CLI struct {
	// Global flags
	APIKey string `help:"Steam Web API key (or STEAM_API_KEY env var)"`

	// Cache flags
	NoCache     bool   `help:"Disable the catalog-detail cache"`
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live for catalog details" default:"24h"`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API server"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch the aggregate view for one Steam ID and print it as JSON"`
	Resolve ResolveCmd `cmd:"" help:"Resolve a vanity name or profile URL fragment to a Steam ID"`
}

// ServeCmd represents the serve command
type ServeCmd struct {
	Port int `short:"p" help:"Port to listen on (defaults to server.port in config)"`
}

// FetchCmd represents the fetch command
type FetchCmd struct {
	SteamID string `arg:"" help:"Numeric Steam ID to fetch"`
	Output  string `short:"o" help:"Path to JSON output file (defaults to stdout)"`
}

// ResolveCmd represents the resolve command
type ResolveCmd struct {
	Username string `arg:"" help:"Vanity name to resolve"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("steamlens"),
		kong.Description("Aggregate one Steam account's identity, library and wishlist into a single enriched view."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.request_timeout", "60s")

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.negative_ttl", "1h")

	// Aggregation defaults
	viper.SetDefault("aggregate.workers", 8)

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("steam.apikey", "STEAM_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.NoCache {
		viper.Set("cache.enabled", false)
	}
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)

	config.InitConfig()
	config.SetSteamAPIKey(cli.APIKey)
}

// newBuilder wires a Steam client, the optional catalog cache and an
// aggregate builder from the global config. The returned closer is nil
// when the cache is disabled.
func newBuilder() (*steam.Client, *aggregate.Builder, *cache.DB, error) {
	if config.SteamAPIKey == "" {
		return nil, nil, nil, fmt.Errorf("steam API key is required (provide via --api-key flag, STEAM_API_KEY env var or steam.apikey in config)")
	}

	client := steam.NewClient(config.SteamAPIKey)

	opts := []aggregate.BuilderOption{
		aggregate.WithWorkers(config.AggregateWorkers),
		aggregate.WithDetailTTL(config.CacheTTL, config.CacheNegativeTTL),
	}

	var db *cache.DB
	if config.CacheEnabled {
		var err error
		db, err = cache.Open(config.CacheDBFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		opts = append(opts, aggregate.WithCache(db))
	}

	return client, aggregate.NewBuilder(client, opts...), db, nil
}

// Run methods for each command

func (s *ServeCmd) Run() error {
	client, builder, db, err := newBuilder()
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				slog.Warn("Failed to close cache database", "error", err)
			}
		}()
	}

	port := s.Port
	if port == 0 {
		port = config.ServerPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(port, client, builder,
		server.WithRequestTimeout(config.ServerRequestTimeout),
	)
	return srv.Start(ctx)
}

func (f *FetchCmd) Run() error {
	_, builder, db, err := newBuilder()
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				slog.Warn("Failed to close cache database", "error", err)
			}
		}()
	}

	result, err := builder.Build(context.Background(), f.SteamID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if f.Output == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(f.Output, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	slog.Info("Wrote aggregate view", "file", f.Output, "games", len(result.OwnedGames), "wishlist", len(result.Wishlist))
	return nil
}

func (r *ResolveCmd) Run() error {
	if config.SteamAPIKey == "" {
		return fmt.Errorf("steam API key is required (provide via --api-key flag, STEAM_API_KEY env var or steam.apikey in config)")
	}
	client := steam.NewClient(config.SteamAPIKey)

	steamID, err := client.ResolveSteamID(context.Background(), r.Username)
	if err != nil {
		return err
	}

	fmt.Println(steamID)
	return nil
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
