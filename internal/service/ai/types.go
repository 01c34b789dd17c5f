package ai

// ModelPreset represents the model usage preset
type ModelPreset string

// PresetPrecise keeps sampling narrow for structured JSON answers.
const PresetPrecise ModelPreset = "precise"

// ModelConfig holds model configuration
type ModelConfig struct {
	Temperature      float32
	TopP             float32
	TopK             int
	MaxOutputTokens  int
	ResponseMimeType string
}

// OpenAIConfig holds OpenAI-specific configuration
type OpenAIConfig struct {
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// GenerateMetadata contains metadata about the generation
type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFallback bool
}

// GenerateOptions holds per-call options. JSONMode asks the provider for a
// JSON-only answer.
type GenerateOptions struct {
	JSONMode bool
}

var presetConfigs = map[ModelPreset]ModelConfig{
	PresetPrecise: {
		Temperature:     0.1,
		TopP:            0.9,
		TopK:            20,
		MaxOutputTokens: 1024,
	},
}

var openAIPresetConfigs = map[ModelPreset]OpenAIConfig{
	PresetPrecise: {
		Temperature: 0.1,
		MaxTokens:   1024,
		TopP:        0.9,
	},
}

// GetPresetConfig returns the Gemini sampling settings for a preset. Unknown
// presets fall back to PresetPrecise.
func GetPresetConfig(preset ModelPreset) ModelConfig {
	if cfg, ok := presetConfigs[preset]; ok {
		return cfg
	}
	return presetConfigs[PresetPrecise]
}

func GetOpenAIPresetConfig(preset ModelPreset) OpenAIConfig {
	if cfg, ok := openAIPresetConfigs[preset]; ok {
		return cfg
	}
	return openAIPresetConfigs[PresetPrecise]
}
