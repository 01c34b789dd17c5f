// Package tagging runs /process batches: one Mezink login per batch, then each
// row in order through profile lookup, prompt rendering and classification.
//
// Every row yields exactly one result. When the classifier answers with an
// error marker such as {"error":"Gemini error: ..."} or the prompt-too-long
// marker, that message is kept in the row's error field (with empty lists)
// rather than being cleared to "", so callers can tell a skipped or failed
// model call apart from a genuine empty classification.
package tagging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kapu/content-tagger-go/internal/constants"
	"github.com/kapu/content-tagger-go/internal/domain"
	"github.com/kapu/content-tagger-go/internal/prompt"
	"github.com/kapu/content-tagger-go/internal/service/ai"
	"github.com/kapu/content-tagger-go/internal/util"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

const noDataMessage = "No bio or captions found for this user/platform."

// RowOutcome labels how a row finished.
type RowOutcome string

const (
	OutcomeClassified RowOutcome = "classified"
	OutcomeNoData     RowOutcome = "no_data"
	OutcomeParseError RowOutcome = "parse_error"
	OutcomeModelError RowOutcome = "model_error"
	OutcomeFailed     RowOutcome = "failed"
)

// Paced reports whether the row reached the model call.
func (o RowOutcome) Paced() bool {
	return o != OutcomeNoData && o != OutcomeFailed
}

type ProfileSource interface {
	LookupProfile(ctx context.Context, username, platform, token string) domain.ProfileData
}

type Classifier interface {
	Classify(ctx context.Context, prompt string) string
}

type ProcessorConfig struct {
	MaxTextLength    int
	StrictCategories bool
}

// RowProcessor turns one row into one result. It never fails: every problem
// is reported in the result's error field.
type RowProcessor struct {
	profiles   ProfileSource
	classifier Classifier
	prompts    *prompt.PromptBuilder
	cfg        ProcessorConfig
	metrics    *Metrics
	now        util.Clock
	logger     *zap.Logger
}

func NewRowProcessor(
	profiles ProfileSource,
	classifier Classifier,
	prompts *prompt.PromptBuilder,
	cfg ProcessorConfig,
	metrics *Metrics,
	logger *zap.Logger,
) *RowProcessor {
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = constants.TextLimits.MaxFieldLength
	}
	return &RowProcessor{
		profiles:   profiles,
		classifier: classifier,
		prompts:    prompts,
		cfg:        cfg,
		metrics:    metrics,
		now:        time.Now,
		logger:     logger,
	}
}

// Process runs one row inside its own panic boundary.
func (p *RowProcessor) Process(ctx context.Context, row domain.Row, token string) (domain.ClassificationResult, RowOutcome) {
	var (
		result  domain.ClassificationResult
		outcome RowOutcome
	)

	var catcher panics.Catcher
	catcher.Try(func() {
		result, outcome = p.process(ctx, row, token)
	})

	if recovered := catcher.Recovered(); recovered != nil {
		p.logger.Error("Row processing panicked",
			zap.String("username", row.Username.Trimmed()),
			zap.Any("panic", recovered.Value),
			zap.String("stack", string(recovered.Stack)),
		)
		result = domain.FailedResult(p.timestamp(), fmt.Sprintf("Row processing error: %v", recovered.Value))
		outcome = OutcomeFailed
	}

	p.metrics.ObserveRow(outcome)
	return result, outcome
}

func (p *RowProcessor) process(ctx context.Context, row domain.Row, token string) (domain.ClassificationResult, RowOutcome) {
	username := row.Username.Trimmed()
	platform := row.Platform.Trimmed()

	profile := row.InlineProfile()
	if profile.IsEmpty() {
		profile = p.profiles.LookupProfile(ctx, username, platform, token)
	}

	profile = profile.Map(func(s string) string {
		return util.NormalizeText(s, p.cfg.MaxTextLength)
	})

	if profile.IsEmpty() {
		p.logger.Info("No profile text for row",
			zap.String("username", username),
			zap.String("platform", platform),
		)
		return domain.FailedResult(p.timestamp(), noDataMessage), OutcomeNoData
	}

	rendered, err := p.prompts.BuildContentTagging(prompt.NewContentTaggingData(profile))
	if err != nil {
		p.logger.Error("Prompt render failed", zap.String("username", username), zap.Error(err))
		return domain.FailedResult(p.timestamp(), fmt.Sprintf("Row processing error: %v", err)), OutcomeFailed
	}

	p.logger.Debug("Prompt rendered",
		zap.String("username", username),
		zap.Int("length", util.RuneLen(rendered)),
	)

	start := time.Now()
	raw := p.classifier.Classify(ctx, rendered)
	p.metrics.ObserveRemote(TargetModel, time.Since(start))

	p.logger.Debug("Model raw response",
		zap.String("username", username),
		zap.String("raw", util.TruncateString(raw, 200)),
	)

	return p.decode(username, raw)
}

func (p *RowProcessor) decode(username, raw string) (domain.ClassificationResult, RowOutcome) {
	processedAt := p.timestamp()

	result, err := ai.DecodeClassification(raw, processedAt)
	if err != nil {
		p.logger.Warn("Model output did not decode",
			zap.String("username", username),
			zap.Error(err),
		)
		return domain.FailedResult(processedAt, ai.ParseErrorMessage(err, raw)), OutcomeParseError
	}

	if result.Error != "" {
		return result, OutcomeModelError
	}

	if p.cfg.StrictCategories {
		var dropped []string
		result, dropped = result.FilterContentStyles()
		if len(dropped) > 0 {
			result.Error = "Dropped unknown content_style values: " + strings.Join(dropped, ", ")
		}
	}

	return result, OutcomeClassified
}

func (p *RowProcessor) timestamp() string {
	return util.FormatISO(p.now())
}
