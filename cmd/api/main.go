package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/application/analysis"
	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/config"
	domain "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/domain/analysis"
	aiopenai "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/infra/ai/openai"
	mysqlp "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/infra/db/mysql"
	postgresp "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/infra/db/postgres"
	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/infra/httpserver"
	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/infra/pubchem"
	minioStore "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/infra/storage"
	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (mysql by default, postgres via config)
	var db *sql.DB
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewReportRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewReportRepository(db)
	}
	defer db.Close()

	// init artifact store; optional, analysis runs without it
	var artifacts domain.ArtifactStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		artifacts = store
	}

	// init model client
	model := aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, aiopenai.Pricing{
		InputPerMillion:  cfg.OpenAI.InputPerMillion,
		OutputPerMillion: cfg.OpenAI.OutputPerMillion,
	})

	// init service
	svc := &appanalysis.Service{
		Repo:      repo,
		Source:    pubchem.New(cfg.PubChem.BaseURL, nil),
		Model:     model,
		Artifacts: artifacts,
		Clock:     appanalysis.SystemClock{},
	}

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(30, 5))
	mux.Mount("/", httpserver.NewRouter(svc, model, cfg.Server.AllowedOrigins, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // evaluations hold the connection open
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
