package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"inventar/internal/api"
	"inventar/internal/config"
	"inventar/internal/photo"
	"inventar/internal/registry"
	"inventar/internal/store"
	"inventar/internal/web"
)

var (
	version = "dev"
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:     "inventar",
	Short:   "Inventory item registry service",
	Long:    `An HTTP service for registering inventory items with optional photos, backed by a single JSON document on disk.`,
	Version: version,
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./inventar.yaml)")
	defaults := config.Defaults()
	rootCmd.Flags().StringP("host", "H", defaults.Host, "address to listen on")
	rootCmd.Flags().IntP("port", "p", defaults.Port, "port to listen on")
	rootCmd.Flags().StringP("cache", "c", defaults.CacheDir, "path to the data directory")
	rootCmd.Flags().StringP("log", "l", "", "log file path")

	_ = viper.BindPFlag("host", rootCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", rootCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("cache_dir", rootCmd.Flags().Lookup("cache"))
	_ = viper.BindPFlag("log_file", rootCmd.Flags().Lookup("log"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("host", defaults.Host)
	viper.SetDefault("port", defaults.Port)
	viper.SetDefault("cache_dir", defaults.CacheDir)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("inventar")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("INVENTAR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing configuration: %w", err)
	}

	closeLog, err := setupLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Bootstrap the data directory and the inventory document.
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	st := store.New(cfg.CacheDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("initializing inventory document: %w", err)
	}
	slog.Info("inventory document ready", "path", st.Path())

	reg := registry.New(st, photo.New(cfg.CacheDir))

	// Combine: form pages and static assets take their exact routes, the
	// API router handles the rest.
	apiRouter := api.NewRouter(reg, cfg.CacheDir)
	webRouter := web.NewRouter()

	mux := http.NewServeMux()
	mux.Handle("GET /register-form", webRouter)
	mux.Handle("GET /search-form", webRouter)
	mux.Handle("GET /static/", webRouter)
	mux.Handle("/", apiRouter)

	handler := api.LoggingMiddleware(mux)

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
