package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kapu/content-tagger-go/internal/domain"
	"github.com/kapu/content-tagger-go/internal/service/tagging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBatches struct {
	results []domain.ClassificationResult
	err     error
	rows    []domain.Row
	ctxErr  error
	called  bool
}

func (f *fakeBatches) Run(ctx context.Context, rows []domain.Row) ([]domain.ClassificationResult, error) {
	f.called = true
	f.rows = rows
	f.ctxErr = ctx.Err()
	return f.results, f.err
}

func serveProcess(t *testing.T, batches BatchRunner, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST("/process", NewProcessHandler(batches, zap.NewNop()).Process)

	req, _ := http.NewRequest("POST", "/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProcess_ReturnsResultsInOrder(t *testing.T) {
	batches := &fakeBatches{results: []domain.ClassificationResult{
		domain.FailedResult("t1", "first"),
		domain.FailedResult("t2", "second"),
	}}

	w := serveProcess(t, batches, `{"rows":[{"username":"a","platform":"ig"},{"username":"b","platform":"tt"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, batches.rows, 2)
	assert.Equal(t, "a", batches.rows[0].Username.Trimmed())

	var got []domain.ClassificationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Error)
	assert.Equal(t, "second", got[1].Error)
}

func TestProcess_EmptyRowsEncodeAsArray(t *testing.T) {
	batches := &fakeBatches{results: []domain.ClassificationResult{}}

	w := serveProcess(t, batches, `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.True(t, batches.called)
}

func TestProcess_AuthenticationFailure(t *testing.T) {
	batches := &fakeBatches{err: fmt.Errorf("%w: status 401", tagging.ErrAuthenticationFailed)}

	w := serveProcess(t, batches, `{"rows":[{"username":"a","platform":"ig"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to authenticate with Mezink API"}`, w.Body.String())
}

func TestProcess_UnexpectedError(t *testing.T) {
	batches := &fakeBatches{err: errors.New("pacer stopped")}

	w := serveProcess(t, batches, `{"rows":[]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server error: pacer stopped"}`, w.Body.String())
}

func TestProcess_MalformedBody(t *testing.T) {
	batches := &fakeBatches{}

	w := serveProcess(t, batches, `{"rows":`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server error: invalid request body")
	assert.False(t, batches.called)
}

func TestProcess_DetachedFromClientCancellation(t *testing.T) {
	batches := &fakeBatches{results: []domain.ClassificationResult{}}
	router := gin.New()
	router.POST("/process", NewProcessHandler(batches, zap.NewNop()).Process)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, "POST", "/process", strings.NewReader(`{"rows":[]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, batches.ctxErr)
}

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler()
	h.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	router := gin.New()
	router.GET("/health", h.Health)

	req, _ := http.NewRequest("GET", "/health", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "2024-05-01T10:00:00.000000Z", status.Timestamp)
}
