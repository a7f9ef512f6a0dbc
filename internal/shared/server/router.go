package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"saenggibu-backend/internal/analyses"
	googleauth "saenggibu-backend/internal/auth"
	"saenggibu-backend/internal/gemini"
	"saenggibu-backend/internal/history"
	"saenggibu-backend/internal/ocr"
	"saenggibu-backend/internal/shared/config"
	"saenggibu-backend/internal/shared/metrics"
	"saenggibu-backend/internal/shared/server/middleware"
	"saenggibu-backend/internal/shared/server/respond"
	"saenggibu-backend/internal/shared/storage/db"
	"saenggibu-backend/internal/shared/storage/object"
	localstore "saenggibu-backend/internal/shared/storage/object/local"
	s3store "saenggibu-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(rateLimitConfig()),
	)

	// Dependencies
	store := newObjectStore(cfg)
	sqlDB := connectDatabase(cfg)

	geminiClient := newGeminiClient(cfg)
	analysisSvc := analyses.NewService(geminiClient)
	analysisHandler := analyses.NewHandler(analysisSvc)

	ocrHandler := ocr.NewHandler(newOCRClient(cfg), store)

	var recordRepo history.Repo
	if sqlDB != nil {
		recordRepo = &history.PGRepo{DB: sqlDB}
	} else {
		recordRepo = history.NewMemoryRepo()
	}
	historyHandler := history.NewHandler(history.NewService(recordRepo))

	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	googleAuthSvc.RegisterRoutes(api)
	registerMeRoutes(api)
	analysisHandler.RegisterRoutes(api)
	ocrHandler.RegisterRoutes(api)
	historyHandler.RegisterRoutes(api)

	return r
}

func connectDatabase(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	ctx := context.Background()
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	conn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		conn.Close()
		return nil
	}
	return conn
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newGeminiClient(cfg config.Config) gemini.Client {
	client, err := gemini.NewClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Printf("gemini client unavailable: %v", err)
		return nil
	}
	return client
}

func newOCRClient(cfg config.Config) ocr.Client {
	client, err := ocr.NewClient(cfg.OCRSpaceAPIKey)
	if err != nil {
		log.Printf("ocr client unavailable: %v", err)
		return nil
	}
	return client
}

func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.2, Burst: 3},
			"DEFAULT": {Rate: 5, Burst: 20},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			if strings.HasSuffix(path, "/analyze") || strings.HasSuffix(path, "/ocr") {
				return "ANALYZE"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
