package ai

import (
	"context"
	"fmt"

	"github.com/kapu/content-tagger-go/internal/constants"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ModelManager routes a prompt to the primary provider and, when configured,
// to the fallback. It keeps no failure state between calls.
type ModelManager struct {
	primary        TextProvider
	fallback       TextProvider
	logger         *zap.Logger
	enableFallback bool
}

type ModelManagerConfig struct {
	GeminiAPIKey       string
	OpenAIAPIKey       string
	DefaultGeminiModel string
	DefaultOpenAIModel string
	EnableFallback     bool
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	defaultGemini := cfg.DefaultGeminiModel
	if defaultGemini == "" {
		defaultGemini = constants.ModelDefaults.GeminiModel
	}

	defaultOpenAI := cfg.DefaultOpenAIModel
	if defaultOpenAI == "" {
		defaultOpenAI = constants.ModelDefaults.OpenAIModel
	}

	var fallback TextProvider
	if cfg.EnableFallback {
		if openaiProvider := NewOpenAIProvider(cfg.OpenAIAPIKey, defaultOpenAI, logger); openaiProvider != nil {
			logger.Info("OpenAI fallback enabled", zap.String("model", defaultOpenAI))
			fallback = openaiProvider
		} else {
			logger.Info("OpenAI fallback disabled (no API key)")
		}
	}

	return NewModelManagerWithProviders(NewGeminiProvider(geminiClient, defaultGemini, logger), fallback, logger), nil
}

// NewModelManagerWithProviders wires explicit providers. fallback may be nil.
func NewModelManagerWithProviders(primary, fallback TextProvider, logger *zap.Logger) *ModelManager {
	return &ModelManager{
		primary:        primary,
		fallback:       fallback,
		logger:         logger,
		enableFallback: fallback != nil,
	}
}

// GenerateText returns the raw text of the first provider that answers. Every
// call reaches the primary provider.
func (mm *ModelManager) GenerateText(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	primaryResult, primaryErr := mm.invokeProvider(ctx, mm.primary, prompt, preset, opts)
	if primaryErr == nil {
		return primaryResult.Text, &GenerateMetadata{
			Provider: mm.primary.Name(),
			Model:    primaryResult.Model,
		}, nil
	}

	if !mm.enableFallback || mm.fallback == nil {
		return "", nil, primaryErr
	}

	mm.logger.Warn("Primary model failed, trying fallback",
		zap.String("primary", mm.primary.Name()),
		zap.Error(primaryErr),
	)

	fallbackResult, fallbackErr := mm.invokeProvider(ctx, mm.fallback, prompt, preset, opts)
	if fallbackErr != nil {
		return "", nil, fallbackErr
	}

	return fallbackResult.Text, &GenerateMetadata{
		Provider:     mm.fallback.Name(),
		Model:        fallbackResult.Model,
		UsedFallback: true,
	}, nil
}

func (mm *ModelManager) invokeProvider(ctx context.Context, provider TextProvider, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if provider == nil {
		return ProviderResult{}, fmt.Errorf("model provider is not configured")
	}
	return provider.Generate(ctx, prompt, preset, opts)
}
