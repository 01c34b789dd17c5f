package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kapu/content-tagger-go/internal/config"
	"github.com/kapu/content-tagger-go/internal/service/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider fails its first `failures` calls with a 503, then replies.
type fakeProvider struct {
	mu       sync.Mutex
	reply    string
	failures int
	prompts  []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ai.ModelPreset, _ *ai.GenerateOptions) (ai.ProviderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if len(f.prompts) <= f.failures {
		return ai.ProviderResult{}, errors.New("Error 503, Message: overloaded")
	}
	return ai.ProviderResult{Text: f.reply, Model: "fake-1"}, nil
}

type mezinkStub struct {
	loginStatus  int
	profileCalls int
	mu           sync.Mutex
}

func (m *mezinkStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if m.loginStatus != http.StatusOK {
			w.WriteHeader(m.loginStatus)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"token":"tok"}}`))
	})
	mux.HandleFunc("/analytics", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.profileCalls++
		m.mu.Unlock()
		if r.URL.Query().Get("username") == "dave" {
			_, _ = w.Write([]byte(`{"data":{"metaData":{"description":"Home cook","topEngagementPost":[{"caption":"Rendang recipe"}]}}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

func newTestServer(t *testing.T, stub *mezinkStub, provider *fakeProvider) *gin.Engine {
	t.Helper()
	mezinkServer := httptest.NewServer(stub.handler())
	t.Cleanup(mezinkServer.Close)

	cfg := &config.Config{
		Mezink: config.MezinkConfig{
			Email:        "ops@example.com",
			Password:     "pw",
			LoginURL:     mezinkServer.URL + "/login",
			AnalyticsURL: mezinkServer.URL + "/analytics",
		},
	}

	models := ai.NewModelManagerWithProviders(provider, nil, zap.NewNop())
	return assemble(cfg, models, zap.NewNop()).Router()
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProcess_AliceScenario(t *testing.T) {
	stub := &mezinkStub{loginStatus: http.StatusOK}
	provider := &fakeProvider{reply: "```json\n" + `{"detected_languages":["English","Indonesia"],"is_multilingual":false,"content_style":["Travel","Food"]}` + "\n```"}
	router := newTestServer(t, stub, provider)

	w := post(router, `{"rows":[{"username":"alice","platform":"ig","bio":"Travel & Food lover 🇮🇩","post1_caption":"Jakarta vibes"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)

	assert.Equal(t, []any{"English", "Indonesia"}, got[0]["detected_languages"])
	assert.Equal(t, false, got[0]["is_multilingual"])
	assert.Equal(t, []any{"Travel", "Food"}, got[0]["content_style"])
	assert.Equal(t, "", got[0]["error"])
	assert.NotEmpty(t, got[0]["processed_at"])

	assert.Equal(t, 0, stub.profileCalls)
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Post 1: Jakarta vibes")
}

func TestProcess_MixedBatch(t *testing.T) {
	stub := &mezinkStub{loginStatus: http.StatusOK}
	provider := &fakeProvider{reply: "I cannot help with that"}
	router := newTestServer(t, stub, provider)

	w := post(router, `{"rows":[
		{"username":"ghost","platform":"ig"},
		{"username":"dave","platform":"yt"},
		{"username":"erin","platform":"x","bio":"hello"}
	]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "No bio or captions found for this user/platform.", got[0]["error"])
	assert.True(t, strings.HasPrefix(got[1]["error"].(string), "Parsing error:"))
	assert.True(t, strings.HasPrefix(got[2]["error"].(string), "Parsing error:"))
	for _, r := range got {
		assert.Equal(t, []any{}, r["detected_languages"])
		assert.Equal(t, []any{}, r["content_style"])
		assert.Equal(t, false, r["is_multilingual"])
	}

	assert.Equal(t, 2, stub.profileCalls)
	require.Len(t, provider.prompts, 2)
	assert.Contains(t, provider.prompts[0], "Bio: Home cook")
	assert.Contains(t, provider.prompts[0], "Post 1: Rendang recipe")
}

func TestProcess_ModelOutageDoesNotCarryIntoNextBatch(t *testing.T) {
	stub := &mezinkStub{loginStatus: http.StatusOK}
	provider := &fakeProvider{
		reply:    `{"detected_languages":["English"],"is_multilingual":false,"content_style":["Food"]}`,
		failures: 4,
	}
	router := newTestServer(t, stub, provider)

	w := post(router, `{"rows":[
		{"username":"a","platform":"ig","bio":"one"},
		{"username":"b","platform":"ig","bio":"two"},
		{"username":"c","platform":"ig","bio":"three"},
		{"username":"d","platform":"ig","bio":"four"}
	]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var first []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.Len(t, first, 4)
	for _, r := range first {
		assert.Equal(t, "Gemini error: Error 503, Message: overloaded", r["error"])
	}

	w = post(router, `{"rows":[{"username":"e","platform":"ig","bio":"five"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var second []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Len(t, second, 1)
	assert.Equal(t, "", second[0]["error"])
	assert.Equal(t, []any{"Food"}, second[0]["content_style"])
	assert.Len(t, provider.prompts, 5)
}

func TestProcess_PassesThroughModelObject(t *testing.T) {
	stub := &mezinkStub{loginStatus: http.StatusOK}
	provider := &fakeProvider{reply: `{"detected_languages":"English","is_multilingual":"false","content_style":["Food"],"confidence":0.7}`}
	router := newTestServer(t, stub, provider)

	w := post(router, `{"rows":[{"username":"alice","platform":"ig","bio":"hi"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)

	assert.Equal(t, []any{"English"}, got[0]["detected_languages"])
	assert.Equal(t, false, got[0]["is_multilingual"])
	assert.Equal(t, 0.7, got[0]["confidence"])
	assert.Equal(t, "", got[0]["error"])
}

func TestProcess_LoginRejected(t *testing.T) {
	stub := &mezinkStub{loginStatus: http.StatusUnauthorized}
	provider := &fakeProvider{reply: "{}"}
	router := newTestServer(t, stub, provider)

	w := post(router, `{"rows":[{"username":"alice","platform":"ig","bio":"hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to authenticate with Mezink API"}`, w.Body.String())
	assert.Empty(t, provider.prompts)
	assert.Equal(t, 0, stub.profileCalls)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newTestServer(t, &mezinkStub{loginStatus: http.StatusOK}, &fakeProvider{reply: "{}"})

	post(router, `{"rows":[{"username":"ghost","platform":"ig"}]}`)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	req, _ = http.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `content_tagger_rows_total{outcome="no_data"} 1`)
	assert.Contains(t, w.Body.String(), `content_tagger_batches_total{status="ok"} 1`)
	assert.Contains(t, w.Body.String(), `content_tagger_remote_request_seconds_count{target="mezink_login"} 1`)
}

func TestBuild_RejectsNilInputs(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), &config.Config{}, nil)
	assert.Error(t, err)
}
