package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"photofolio/internal/config"
	"photofolio/internal/es"
	"photofolio/internal/events"
	"photofolio/internal/handlers"
	"photofolio/internal/logging"
	"photofolio/internal/service/search"
	"photofolio/internal/service/token"
	"photofolio/internal/store/mongostore"
	httpserver "photofolio/internal/transport/http"
	"photofolio/internal/upload"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	st, err := mongostore.NewStore(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo init: %v", err)
	}

	tokens := token.New([]byte(cfg.JWTSecret), token.DefaultTTL)

	uploads, err := buildUploads(cfg, logger)
	if err != nil {
		log.Fatalf("upload provider init: %v", err)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(cfg.KafkaAddress)
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	var searchSvc *search.Service
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(es.Config{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		searchSvc = search.New(esClient, cfg.ESIndex, logger)
	} else {
		logger.Warn("ES_URL not set, photo search falls back to the document store")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	e.Use(logging.RequestLogger(logger))

	var pub events.Publisher
	if producer != nil {
		pub = producer
	}

	deps := httpserver.Deps{
		Tokens:         tokens,
		AuthHandler:    &handlers.AuthHandler{Store: st, Tokens: tokens, Producer: pub},
		UserHandler:    &handlers.UserHandler{Store: st},
		PhotoHandler:   &handlers.PhotoHandler{Store: st, Uploads: uploads, Search: searchSvc, Producer: pub},
		AlbumHandler:   &handlers.AlbumHandler{Store: st},
		ProductHandler: &handlers.ProductHandler{Store: st},
		CartHandler:    &handlers.CartHandler{Store: st},
		OrderHandler:   &handlers.OrderHandler{Store: st, Producer: pub},
		SearchHandler:  &handlers.SearchHandler{Store: st, Search: searchSvc},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "upload_provider", uploads.ProviderName())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := st.Close(); err != nil {
		logger.Error("mongo close error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// buildUploads selects the asset backend once at startup; nothing past this
// point branches on which provider is active.
func buildUploads(cfg *config.Config, logger *slog.Logger) (*upload.Service, error) {
	switch cfg.UploadProvider {
	case "s3":
		p, err := upload.NewS3(context.Background(), upload.S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			BaseEndpoint:  cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return upload.NewService(p, logger), nil
	case "minio":
		p, err := upload.NewMinio(upload.MinioConfig{
			Endpoint:      cfg.MinioEndpoint,
			AccessKey:     cfg.MinioAccessKey,
			SecretKey:     cfg.MinioSecretKey,
			Bucket:        cfg.MinioBucket,
			UseSSL:        cfg.MinioUseSSL,
			PublicBaseURL: cfg.MinioPublicURL,
		})
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return upload.NewService(p, logger), nil
	default:
		return nil, errors.New("UPLOAD_PROVIDER must be minio or s3")
	}
}
