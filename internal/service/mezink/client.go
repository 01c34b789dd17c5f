package mezink

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kapu/content-tagger-go/internal/constants"
	"github.com/kapu/content-tagger-go/internal/domain"
	"github.com/kapu/content-tagger-go/internal/util"
	"github.com/kapu/content-tagger-go/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	TargetLogin   = "mezink_login"
	TargetProfile = "mezink_profile"
)

// LatencyObserver receives the duration of each remote call.
type LatencyObserver interface {
	ObserveRemote(target string, elapsed time.Duration)
}

type Config struct {
	Email          string
	Password       string
	LoginURL       string
	AnalyticsURL   string
	LoginTimeout   time.Duration
	ProfileTimeout time.Duration
}

// Client talks to the Mezink login and analytics endpoints. It holds no token;
// callers authenticate once per batch and pass the token along.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *zap.Logger
	observer   LatencyObserver
	now        util.Clock
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

func NewClient(httpClient *http.Client, cfg Config, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = constants.MezinkAPI.LoginURL
	}
	if cfg.AnalyticsURL == "" {
		cfg.AnalyticsURL = constants.MezinkAPI.AnalyticsURL
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = constants.MezinkAPI.LoginTimeout
	}
	if cfg.ProfileTimeout <= 0 {
		cfg.ProfileTimeout = constants.MezinkAPI.ProfileTimeout
	}

	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// WithObserver attaches a latency observer.
func (c *Client) WithObserver(observer LatencyObserver) *Client {
	c.observer = observer
	return c
}

// Authenticate logs in and returns a bearer token.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	payload, err := json.Marshal(loginRequest{
		Email: c.cfg.Email,
		// base64 is what the login endpoint expects; it is an encoding, not encryption
		Password: base64.StdEncoding.EncodeToString([]byte(c.cfg.Password)),
		Provider: "",
		Token:    "",
	})
	if err != nil {
		return "", errors.NewAuthError("encode login request", 0, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.LoginTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LoginURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.NewAuthError("build login request", 0, err)
	}

	req.Header.Set("Accept-Language", constants.MezinkAPI.AcceptLanguage)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("timestamp", util.FormatMillisUTC(c.now()))

	body, status, err := c.do(req, TargetLogin)
	if err != nil {
		c.logger.Error("Mezink login error", zap.Error(err))
		return "", errors.NewAuthError("login request failed", 0, err)
	}

	if status != http.StatusOK {
		c.logger.Error("Mezink login failed", zap.Int("status", status))
		return "", errors.NewAuthError(fmt.Sprintf("login returned status %d", status), status, nil)
	}

	token := gjson.GetBytes(body, "data.token")
	if !gjson.ValidBytes(body) || token.Type != gjson.String || token.Str == "" {
		c.logger.Error("Mezink login failed: no token in response", zap.Int("status", status))
		return "", errors.NewAuthError("login response carried no token", status, nil)
	}

	c.logger.Info("Mezink login successful")
	return token.Str, nil
}

// FetchProfile returns the raw analytics JSON for a creator.
func (c *Client) FetchProfile(ctx context.Context, username, platform, token string) ([]byte, error) {
	mediaType := domain.ResolvePlatform(platform)

	params := url.Values{}
	params.Set("username", username)
	params.Set("mediaType", string(mediaType))
	reqURL := c.cfg.AnalyticsURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProfileTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewAPIError("build analytics request", 0, nil).WithCause(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, status, err := c.do(req, TargetProfile)
	if err != nil {
		return nil, errors.NewAPIError("analytics request failed", 0, map[string]any{
			"username":   username,
			"media_type": mediaType,
		}).WithCause(err)
	}

	if status != http.StatusOK {
		return nil, errors.NewAPIError(fmt.Sprintf("analytics returned status %d", status), status, map[string]any{
			"username":   username,
			"media_type": mediaType,
		})
	}

	if !gjson.ValidBytes(body) {
		return nil, errors.NewAPIError("analytics returned invalid JSON", status, map[string]any{
			"username":   username,
			"media_type": mediaType,
		})
	}

	return body, nil
}

// LookupProfile fetches and extracts a profile. Failures are logged and give
// an empty profile.
func (c *Client) LookupProfile(ctx context.Context, username, platform, token string) domain.ProfileData {
	body, err := c.FetchProfile(ctx, username, platform, token)
	if err != nil {
		c.logger.Warn("Profile fetch failed",
			zap.String("username", username),
			zap.String("platform", platform),
			zap.Error(err),
		)
		return domain.ProfileData{}
	}
	return ExtractBioAndCaptions(body)
}

func (c *Client) do(req *http.Request, target string) ([]byte, int, error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveRemote(target, time.Since(start))
		}
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}
