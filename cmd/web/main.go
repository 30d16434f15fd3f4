package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westcutz/booking-web/internal/api"
	"github.com/westcutz/booking-web/internal/config"
	"github.com/westcutz/booking-web/internal/middleware"
	"github.com/westcutz/booking-web/internal/routes"
	"github.com/westcutz/booking-web/internal/store"
)

func main() {

	godotenv.Load()
	setupLogger()

	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	apiClient := api.NewClient(
		cfg.BookingAPIURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}),
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, apiClient, st, cfg)

	log.Info().Str("addr", cfg.Addr()).Str("booking_api", cfg.BookingAPIURL).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func setupLogger() {
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && l != zerolog.NoLevel {
		level = l
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.UseRedis() {
		return store.OpenRedisStore(cfg.RedisURL)
	}
	return store.OpenFileStore(cfg.StorePath)
}
