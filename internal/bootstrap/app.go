package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"study-backend/internal/documents"
	"study-backend/internal/exams"
	"study-backend/internal/llm"
	openai "study-backend/internal/llm/openai"
	"study-backend/internal/progress"
	"study-backend/internal/shared/config"
	"study-backend/internal/shared/server"
	"study-backend/internal/shared/storage/db"
	"study-backend/internal/shared/storage/upload"
	"study-backend/internal/uploads"
	"study-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	ProgressRepo  progress.Repo
	ExamsRepo     exams.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	UploadService    *uploads.Service
	LLM              llm.Client
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		UploadHandler:   uploads.NewHandler(app.UploadService),
		DocumentHandler: documents.NewHandler(app.DocumentsService),
		UserHandler:     users.NewHandler(app.UsersService, app.DocumentsService),
		ProgressHandler: progress.NewHandler(app.ProgressRepo),
		ExamHandler:     exams.NewHandler(app.ExamsRepo),
	})

	return app, nil
}

// Close releases shared resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
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
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.ProgressRepo = &progress.PGRepo{DB: app.DB}
		app.ExamsRepo = &exams.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ProgressRepo = progress.NewMemoryRepo()
		app.ExamsRepo = exams.NewMemoryRepo()
	}

	app.LLM = llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.OpenAIAPIKey) != "" {
		client, err := openai.NewClient(app.Config.OpenAIAPIKey, app.Config.LLMModel)
		if err != nil {
			log.Printf("bootstrap: openai client not configured: %v", err)
		} else {
			app.LLM = client
		}
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Config.MonthlyLimit)
	app.DocumentsService = documents.NewService(app.DocumentsRepo)
	app.UploadService = uploads.NewService(
		app.UsersService,
		app.DocumentsRepo,
		upload.New(app.Config.UploadDir),
		app.LLM,
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
