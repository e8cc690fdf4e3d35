package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"verbatim/internal/handlers"
	"verbatim/internal/logger"
	"verbatim/internal/repository"
	"verbatim/internal/repository/db"
	"verbatim/internal/server"
	"verbatim/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := loadConfig(); err != nil {
		// Config file is optional; environment variables can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
		}
	}

	log := logger.Get(viper.GetString("log_level"))

	signingKey := viper.GetString("auth.signing_key")
	if signingKey == "" {
		log.Fatalw("auth.signing_key is not set; refusing to start with an empty token key")
	}

	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to open store", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close store", "err", cerr)
		}
	}()

	// The store handle is built once here and injected; nothing holds it as
	// package state.
	repos := repository.NewRepository(conn, viper.GetString("db.driver"))
	services := service.NewService(repos, service.Config{
		SigningKey: signingKey,
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
	}, log)
	apiHandler := handlers.NewHandler(services, log, corsOrigins())

	srv := &server.Server{}
	go func() {
		port := viper.GetString("port")
		if port == "" {
			port = "8080"
		}
		log.Infow("starting server", "port", port)
		if err := srv.Run(port, apiHandler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("db.driver", db.DriverSQLite)
	viper.SetDefault("db.dsn", "verbatim.db")
	viper.SetDefault("log_level", logger.InfoLevel)

	// AUTH_SIGNING_KEY, DB_DSN, CORS_ORIGINS... override file values.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return viper.ReadInConfig()
}

func openDB(log *logger.Logger) (*sql.DB, error) {
	driver := viper.GetString("db.driver")
	dsn := viper.GetString("db.dsn")
	log.Infow("opening store", "driver", driver)
	return db.Open(driver, dsn)
}

// corsOrigins parses the comma-separated allow list from config.
func corsOrigins() []string {
	raw := viper.GetString("cors.origins")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// waitForShutdown blocks on termination signals and drains the server.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
