package tagging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kapu/content-tagger-go/internal/domain"
	"go.uber.org/zap"
)

// ErrAuthenticationFailed aborts a batch before any row is processed.
var ErrAuthenticationFailed = errors.New("mezink authentication failed")

type Authenticator interface {
	Authenticate(ctx context.Context) (string, error)
}

type RowHandler interface {
	Process(ctx context.Context, row domain.Row, token string) (domain.ClassificationResult, RowOutcome)
}

// BatchService authenticates once and processes rows sequentially, in order.
type BatchService struct {
	auth     Authenticator
	rows     RowHandler
	newPacer PacerFactory
	metrics  *Metrics
	logger   *zap.Logger
}

func NewBatchService(auth Authenticator, rows RowHandler, newPacer PacerFactory, metrics *Metrics, logger *zap.Logger) *BatchService {
	if newPacer == nil {
		newPacer = NoopPacer
	}
	return &BatchService{
		auth:     auth,
		rows:     rows,
		newPacer: newPacer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run returns exactly one result per row, in input order. The only errors are
// ErrAuthenticationFailed and context cancellation while pacing.
func (s *BatchService) Run(ctx context.Context, rows []domain.Row) ([]domain.ClassificationResult, error) {
	start := time.Now()

	token, err := s.auth.Authenticate(ctx)
	if err != nil {
		s.metrics.ObserveBatch(BatchStatusAuthFailed)
		s.logger.Error("Batch aborted: authentication failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	pacer := s.newPacer()
	results := make([]domain.ClassificationResult, 0, len(rows))

	for i, row := range rows {
		result, outcome := s.rows.Process(ctx, row, token)
		results = append(results, result)

		s.logger.Debug("Row processed",
			zap.Int("index", i),
			zap.String("username", row.Username.Trimmed()),
			zap.String("outcome", string(outcome)),
		)

		if !outcome.Paced() {
			continue
		}

		if err := pacer.Wait(ctx); err != nil {
			s.metrics.ObserveBatch(BatchStatusError)
			return nil, fmt.Errorf("batch interrupted after row %d: %w", i, err)
		}
	}

	s.metrics.ObserveBatch(BatchStatusOK)
	s.logger.Info("Batch completed",
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results, nil
}
