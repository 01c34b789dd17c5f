package constants

import "time"

// CaptionSlots is the fixed number of post captions per profile.
const CaptionSlots = 6

var MezinkAPI = struct {
	LoginURL       string
	AnalyticsURL   string
	LoginTimeout   time.Duration
	ProfileTimeout time.Duration
	AcceptLanguage string
}{
	LoginURL:       "https://api.cloudsuper.link/usr/v1/login",
	AnalyticsURL:   "https://api.cloudsuper.link/sosmed/v1/analytics",
	LoginTimeout:   30 * time.Second,
	ProfileTimeout: 10 * time.Second,
	AcceptLanguage: "en-US,en;q=0.9",
}

var TextLimits = struct {
	MaxFieldLength  int // bio / caption, in runes
	MaxPromptLength int // whole rendered prompt, in runes
	RawPreview      int // raw model output echoed in parse errors
}{
	MaxFieldLength:  600,
	MaxPromptLength: 5000,
	RawPreview:      100,
}

var ModelDefaults = struct {
	GeminiModel string
	OpenAIModel string
	Timeout     time.Duration
}{
	GeminiModel: "gemini-2.5-flash",
	OpenAIModel: "gpt-4.1-mini",
	Timeout:     60 * time.Second,
}

var Throttle = struct {
	RowInterval time.Duration
}{
	RowInterval: 1 * time.Second, // one model call per second per batch
}

var ServerConfig = struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}{
	ReadTimeout: 30 * time.Second,
	// zero disables the write deadline; a paced batch has no upper bound on
	// duration and its response must not be cut off
	WriteTimeout:    0,
	IdleTimeout:     60 * time.Second,
	ShutdownTimeout: 30 * time.Second,
}
