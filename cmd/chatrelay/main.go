package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/chatrelay/internal/profile"
	"github.com/hrygo/chatrelay/server"
	"github.com/hrygo/chatrelay/store"
	"github.com/hrygo/chatrelay/store/db"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:   "chatrelay",
		Short: `A chat relay that remembers who you are and forwards the rest to a completion model.`,
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile := &profile.Profile{
				Mode:     viper.GetString("mode"),
				Addr:     viper.GetString("addr"),
				Port:     viper.GetInt("port"),
				Data:     viper.GetString("data"),
				Driver:   viper.GetString("driver"),
				DSN:      viper.GetString("dsn"),
				Database: viper.GetString("database"),
				Version:  version,
			}
			instanceProfile.FromEnv()
			if err := instanceProfile.Validate(); err != nil {
				slog.Error("invalid configuration", "error", err)
				os.Exit(1)
			}

			ctx, cancel := context.WithCancel(context.Background())
			s, err := newServer(ctx, instanceProfile)
			if err != nil {
				cancel()
				slog.Error("failed to start chatrelay", "error", err)
				os.Exit(1)
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			// The default signal sent by the `kill` command is SIGTERM,
			// which is taken as the graceful shutdown signal for many systems, eg., Kubernetes, Gunicorn.
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)

			go func() {
				<-c
				s.Shutdown(ctx)
				cancel()
			}()

			printGreetings(instanceProfile)

			if err := s.Start(ctx); err != nil {
				slog.Error("failed to start server", "error", err)
				s.Shutdown(ctx)
				cancel()
				os.Exit(1)
			}

			// Wait for CTRL-C.
			<-ctx.Done()
		},
	}
)

// newDBDriver is replaced in tests.
var newDBDriver = db.NewDBDriver

// newServer opens and migrates the store and builds the server. The store is
// closed again when any later step fails.
func newServer(ctx context.Context, instanceProfile *profile.Profile) (*server.Server, error) {
	dbDriver, err := newDBDriver(instanceProfile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}

	storeInstance := store.New(dbDriver, instanceProfile)
	if err := storeInstance.Migrate(ctx); err != nil {
		closeStore(storeInstance)
		return nil, errors.Wrap(err, "failed to migrate")
	}

	s, err := server.NewServer(ctx, instanceProfile, storeInstance)
	if err != nil {
		closeStore(storeInstance)
		return nil, errors.Wrap(err, "failed to create server")
	}
	return s, nil
}

func closeStore(s *store.Store) {
	if err := s.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", profile.DriverMongo)
	viper.SetDefault("port", 5000)
	viper.SetDefault("database", "chat_bot")

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 5000, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory, used by the sqlite driver")
	rootCmd.PersistentFlags().String("driver", profile.DriverMongo, "database driver: mongo, postgres or sqlite")
	rootCmd.PersistentFlags().String("dsn", "", "database source name, e.g. mongodb://localhost:27017")
	rootCmd.PersistentFlags().String("database", "chat_bot", "database name, used by the mongo driver")

	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "database"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("chatrelay")
	viper.AutomaticEnv()
	// PORT is honored for platforms that inject it.
	if err := viper.BindEnv("port", "CHATRELAY_PORT", "PORT"); err != nil {
		panic(err)
	}
}

func printGreetings(profile *profile.Profile) {
	fmt.Printf("chatrelay %s started successfully!\n", profile.Version)
	if profile.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
		if !profile.HasCompletionCredential() {
			fmt.Fprint(os.Stderr, "No completion API key is set, POST /api/chat will answer 500\n")
		}
	}
	fmt.Printf("Server listening on %s:%d\n", profile.Addr, profile.Port)
	fmt.Printf("Database driver: %s\n", profile.Driver)
}

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
