package ai

import (
	"context"
	"errors"
	"time"

	"github.com/kapu/content-tagger-go/internal/constants"
	"github.com/kapu/content-tagger-go/internal/util"
	"go.uber.org/zap"
)

const promptTooLongMessage = "Prompt too long. Skipped to avoid failure."

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error)
}

type ClassifierConfig struct {
	MaxPromptLength int
	Timeout         time.Duration
}

// Classifier turns a rendered prompt into raw model text. It never returns an
// error: failures come back as {"error": ...} marker strings, and an empty
// model answer comes back as "".
type Classifier struct {
	generator TextGenerator
	cfg       ClassifierConfig
	logger    *zap.Logger
}

func NewClassifier(generator TextGenerator, cfg ClassifierConfig, logger *zap.Logger) *Classifier {
	if cfg.MaxPromptLength <= 0 {
		cfg.MaxPromptLength = constants.TextLimits.MaxPromptLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.ModelDefaults.Timeout
	}
	return &Classifier{
		generator: generator,
		cfg:       cfg,
		logger:    logger,
	}
}

func (c *Classifier) Classify(ctx context.Context, prompt string) string {
	if promptLen := util.RuneLen(prompt); promptLen > c.cfg.MaxPromptLength {
		c.logger.Warn("Prompt too long, skipping model call",
			zap.Int("length", promptLen),
			zap.Int("limit", c.cfg.MaxPromptLength),
		)
		return ErrorMarker(promptTooLongMessage)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	text, meta, err := c.generator.GenerateText(ctx, prompt, PresetPrecise, &GenerateOptions{
		JSONMode: true,
	})
	if errors.Is(err, ErrEmptyResponse) {
		c.logger.Warn("Model returned no candidates")
		return ""
	}
	if err != nil {
		c.logger.Error("Model call failed", zap.Error(err))
		return ErrorMarker("Gemini error: " + err.Error())
	}

	if meta != nil && meta.UsedFallback {
		c.logger.Info("Classification served by fallback provider",
			zap.String("provider", meta.Provider),
			zap.String("model", meta.Model),
		)
	}

	return StripCodeFence(text)
}
