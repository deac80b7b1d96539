package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "pixelup-backend/internal/auth"
	"pixelup-backend/internal/enhance"
	"pixelup-backend/internal/images"
	"pixelup-backend/internal/shared/config"
	"pixelup-backend/internal/shared/server"
	"pixelup-backend/internal/shared/storage/db"
	"pixelup-backend/internal/shared/storage/object"
	localstore "pixelup-backend/internal/shared/storage/object/local"
	s3store "pixelup-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Store         object.ObjectStore
	Enhancer      *enhance.Client
	ImagesRepo    images.Repo
	ImagesService *images.Service
	ImagesHandler *images.Handler
	GoogleAuth    *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Enhancer: enhance.New(cfg.BackendURL),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		ImagesHandler: app.ImagesHandler,
		GoogleAuth:    app.GoogleAuth,
		Store:         app.Store,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var repo images.Repo
	if app.DB != nil {
		repo = &images.PGRepo{DB: app.DB}
	} else {
		repo = images.NewMemoryRepo()
	}

	svc := &images.Service{
		Store:         app.Store,
		Repo:          repo,
		Enhancer:      app.Enhancer,
		States:        images.NewStateTracker(),
		PublicBaseURL: app.Config.PublicBaseURL,
		HealthTimeout: app.Config.BackendHealthTimeout,
	}

	app.ImagesRepo = repo
	app.ImagesService = svc
	app.ImagesHandler = images.NewHandler(svc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
