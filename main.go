package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fajrulhm/perpus-admin/api"
	"github.com/fajrulhm/perpus-admin/config"
	"github.com/fajrulhm/perpus-admin/log"
	"github.com/fajrulhm/perpus-admin/server"
	"github.com/fajrulhm/perpus-admin/session"
	"github.com/fajrulhm/perpus-admin/store"
	"github.com/fajrulhm/perpus-admin/store/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const greetingBanner = `
██████  ███████ ██████  ██████  ██    ██ ███████
██   ██ ██      ██   ██ ██   ██ ██    ██ ██
██████  █████   ██████  ██████  ██    ██ ███████
██      ██      ██   ██ ██      ██    ██      ██
██      ███████ ██   ██ ██       ██████  ███████
`

var (
	configFile string
	host       string
	port       int
	data       string

	rootCmd = &cobra.Command{
		Use:   "perpus-admin",
		Short: "Perpus-admin is the staff gateway for the perpus library API",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			database, err := db.NewDB()
			if err != nil {
				log.Error("Error opening session database", zap.Error(err))
				return
			}
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				log.Error("Error migrating session database", zap.Error(err))
				return
			}

			sessionStore := store.NewStore(database.DB)
			if err := sessionStore.Ping(); err != nil {
				log.Error("Error pinging session database", zap.Error(err))
				return
			}

			sessions := session.NewManager(sessionStore)
			apiClient := api.NewClient(config.Opts.APIBaseURL)

			s, err := server.NewServer(ctx, apiClient, sessions)
			if err != nil {
				log.Error("Error creating server", zap.Error(err))
				return
			}

			println(greetingBanner)
			log.Info("Starting perpus-admin",
				zap.String("version", config.Opts.Version),
				zap.String("api", config.Opts.APIBaseURL))

			errCh := make(chan error, 1)
			go func() {
				errCh <- s.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil {
					log.Error("Server stopped", zap.Error(err))
				}
			case sig := <-sigCh:
				log.Info("Shutting down", zap.String("signal", sig.String()))
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				if err := s.Shutdown(shutdownCtx); err != nil {
					log.Error("Error shutting down server", zap.Error(err))
				}
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (toml or yaml)")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "address to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory")

	cobra.OnInitialize(func() {
		if _, err := config.GetConfig(); err != nil {
			log.Fatal("Error loading config", zap.Error(err))
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				log.Fatal("Error parsing config file", zap.Error(err))
			}
		}
		// Flags win over the config file.
		if host != "" {
			config.Opts.Host = host
		}
		if port != 0 {
			config.Opts.Port = port
		}
		if data != "" {
			if err := config.SetDataDir(data); err != nil {
				log.Fatal("Error setting data directory", zap.Error(err))
			}
		}
		// Rebuild the logger now that the real options are known.
		log.Logger = log.NewLogger()
	})
}

func main() {
	defer log.Logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Error running command", zap.Error(err))
	}
}
