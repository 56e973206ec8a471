package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-builder/internal/adapter/gateway"
	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/metrics"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/jd"
	infra "resume-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// storage
	var resumes usecase.ResumeRepository
	if cfg.Database.URL != "" {
		pool, err := infra.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		resumes = repo.NewResumesRepo(pool)
	} else {
		slog.Warn("DATABASE_URL not set, resumes are kept in memory")
		resumes = repo.NewMemoryResumes()
	}

	templates := usecase.DefaultTemplateCatalog()
	if cfg.Editor.TemplatePresetsFile != "" {
		templates, err = usecase.LoadTemplateCatalog(cfg.Editor.TemplatePresetsFile)
		if err != nil {
			slog.Error("failed to load template presets", "path", cfg.Editor.TemplatePresetsFile, "error", err)
			os.Exit(1)
		}
	}

	renderer := infra.NewChromedpRenderer(cfg.Render.ChromePath)
	renderer.Timeout = cfg.Render.Timeout

	exporter := usecase.NewExporter(renderer, usecase.DeviceRGBNormalizer{}, templates, artifactStore(ctx, cfg.Artifacts))

	postings := jd.NewFetcher()
	deps := usecase.SessionDeps{
		NewStore:        usecase.OwnedStoreFactory(resumes),
		Exporter:        exporter,
		Templates:       templates,
		JobDescriptions: gateway.LocalJobDescriptions{Postings: postings},
		Analyzer:        usecase.LocalAnalyzer{},
		Observer:        metrics.SessionObserver{},
		AutoSaveDelay:   cfg.Editor.AutoSaveDelay,
		BulletCount:     cfg.Editor.ExperienceBullets,
	}
	if cfg.Editor.ResumeAPIURL != "" {
		slog.Info("sessions save through remote storage API", "url", cfg.Editor.ResumeAPIURL)
		deps.NewStore = gateway.StoreFactory(cfg.Editor.ResumeAPIURL)
	}

	hd := httpadapter.Deps{
		Resumes:   resumes,
		Templates: templates,
		Postings:  postings,
		JWTSecret: cfg.Auth.JWTSecret,
	}
	if cfg.AI.GeminiAPIKey != "" {
		gemini, err := ai.NewClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		if err != nil {
			slog.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		deps.Suggester = gemini
		hd.AI = gemini
		hd.Structurer = gemini
	} else {
		slog.Warn("GEMINI_API_KEY not set, AI suggestions and imports are disabled")
	}

	if url := cfg.Editor.ServicesAPIURL; url != "" {
		tok, err := httpadapter.NewJWTVerifier(cfg.Auth.JWTSecret).IssueToken("resume-builder", 30*24*time.Hour)
		if err != nil {
			slog.Error("failed to issue service token", "error", err)
			os.Exit(1)
		}
		auth := usecase.StaticToken(tok)
		deps.Suggester = gateway.NewAIClient(url, auth)
		deps.JobDescriptions = gateway.NewJDClient(url, auth)
		deps.Analyzer = gateway.NewATSClient(url, auth)
		slog.Info("sessions use remote AI, JD and ATS services", "url", url)
	}

	registry := usecase.NewSessionRegistry(deps)
	hd.Sessions = registry

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		Immutable:    true,
	})
	httpadapter.NewHandler(hd).RegisterRoutes(app)

	go func() {
		slog.Info("server listening", "port", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	registry.CloseAll()
}

func artifactStore(ctx context.Context, cfg config.ArtifactConfig) usecase.ArtifactStore {
	switch {
	case cfg.Bucket != "":
		client, err := infra.NewS3Client(ctx, infra.S3Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
		if err != nil {
			slog.Warn("artifact bucket unavailable, exports are not archived", "bucket", cfg.Bucket, "error", err)
			return nil
		}
		return infra.NewS3ArtifactStore(client, cfg.Bucket)
	case cfg.Dir != "":
		return infra.NewFileArtifactStore(cfg.Dir)
	}
	return nil
}
