package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kapu/content-tagger-go/internal/adapter/http/router"
	"github.com/kapu/content-tagger-go/internal/config"
	"github.com/kapu/content-tagger-go/internal/prompt"
	"github.com/kapu/content-tagger-go/internal/service/ai"
	"github.com/kapu/content-tagger-go/internal/service/mezink"
	"github.com/kapu/content-tagger-go/internal/service/tagging"
	"github.com/kapu/content-tagger-go/pkg/errors"
	"go.uber.org/zap"
)

// Container bundles the assembled services behind the HTTP router.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Metrics *tagging.Metrics
	Batches *tagging.BatchService
	Models  *ai.ModelManager
}

// Build assembles all services. Model clients are created here so that
// request handling never constructs remote clients.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	models, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:       cfg.Gemini.APIKey,
		OpenAIAPIKey:       cfg.OpenAI.APIKey,
		DefaultGeminiModel: cfg.Gemini.Model,
		DefaultOpenAIModel: cfg.OpenAI.Model,
		EnableFallback:     cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, errors.NewServiceError("failed to create model manager", "gemini", "NewClient", err)
	}

	container := assemble(cfg, models, logger)
	container.Models = models
	return container, nil
}

// assemble wires everything downstream of the text generator.
func assemble(cfg *config.Config, generator ai.TextGenerator, logger *zap.Logger) *Container {
	metrics := tagging.NewMetrics()

	mezinkClient := mezink.NewClient(&http.Client{}, mezink.Config{
		Email:          cfg.Mezink.Email,
		Password:       cfg.Mezink.Password,
		LoginURL:       cfg.Mezink.LoginURL,
		AnalyticsURL:   cfg.Mezink.AnalyticsURL,
		LoginTimeout:   cfg.Mezink.LoginTimeout,
		ProfileTimeout: cfg.Mezink.ProfileTimeout,
	}, logger).WithObserver(metrics)

	classifier := ai.NewClassifier(generator, ai.ClassifierConfig{
		MaxPromptLength: cfg.Tagging.MaxPromptLength,
		Timeout:         cfg.Gemini.Timeout,
	}, logger)

	processor := tagging.NewRowProcessor(
		mezinkClient,
		classifier,
		prompt.NewPromptBuilder(),
		tagging.ProcessorConfig{
			MaxTextLength:    cfg.Tagging.MaxTextLength,
			StrictCategories: cfg.Tagging.StrictCategories,
		},
		metrics,
		logger,
	)

	batches := tagging.NewBatchService(
		mezinkClient,
		processor,
		tagging.NewPacerFactory(cfg.Tagging.RowInterval),
		metrics,
		logger,
	)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Batches: batches,
	}
}

// Router returns the HTTP handler serving /process, /health and /metrics.
func (c *Container) Router() *gin.Engine {
	return router.Setup(router.Dependencies{
		Batches:  c.Batches,
		Registry: c.Metrics.Registry(),
	}, c.Logger)
}
