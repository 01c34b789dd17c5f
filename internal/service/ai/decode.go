package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kapu/content-tagger-go/internal/constants"
	"github.com/kapu/content-tagger-go/internal/domain"
	"github.com/kapu/content-tagger-go/internal/util"
	"github.com/tidwall/gjson"
)

const (
	codeFenceJSON = "```json"
	codeFence     = "```"
)

var errNotAnObject = errors.New("model output is not a JSON object")

const (
	keyDetectedLanguages = "detected_languages"
	keyIsMultilingual    = "is_multilingual"
	keyContentStyle      = "content_style"
	keyProcessedAt       = "processed_at"
	keyError             = "error"
)

// ErrorMarker renders the {"error": msg} object returned in place of model text.
func ErrorMarker(message string) string {
	b, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return `{"error":"unencodable error message"}`
	}
	return string(b)
}

// StripCodeFence removes one leading ```json (or bare ```) marker and one
// trailing ``` marker.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, codeFenceJSON) {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, codeFenceJSON))
	} else if strings.HasPrefix(cleaned, codeFence) {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, codeFence))
	}
	if strings.HasSuffix(cleaned, codeFence) {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, codeFence))
	}
	return cleaned
}

// DecodeClassification decodes model text into a result stamped with
// processedAt. Any JSON object is accepted: known fields are coerced
// leniently and unknown keys are kept in Extra.
func DecodeClassification(raw, processedAt string) (domain.ClassificationResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.ClassificationResult{}, errNotAnObject
		}
		return domain.ClassificationResult{}, err
	}
	if fields == nil {
		return domain.ClassificationResult{}, errNotAnObject
	}

	result := domain.ClassificationResult{ProcessedAt: processedAt}
	for key, value := range fields {
		v := gjson.ParseBytes(value)
		switch key {
		case keyDetectedLanguages:
			result.DetectedLanguages = stringList(v)
		case keyIsMultilingual:
			result.IsMultilingual = v.Bool()
		case keyContentStyle:
			result.ContentStyle = stringList(v)
		case keyError:
			if v.Type != gjson.Null {
				result.Error = v.String()
			}
		case keyProcessedAt:
			// always stamped here
		default:
			if result.Extra == nil {
				result.Extra = make(map[string]json.RawMessage)
			}
			result.Extra[key] = value
		}
	}

	return result.Normalized(), nil
}

// stringList accepts a list, or a single scalar standing in for a one-item list.
func stringList(v gjson.Result) []string {
	switch {
	case v.IsArray():
		out := []string{}
		v.ForEach(func(_, item gjson.Result) bool {
			if item.Type != gjson.Null {
				out = append(out, item.String())
			}
			return true
		})
		return out
	case v.Type == gjson.Null:
		return []string{}
	case v.Type == gjson.String && strings.TrimSpace(v.Str) == "":
		return []string{}
	default:
		return []string{v.String()}
	}
}

// ParseErrorMessage is the row error for model output that failed to decode.
func ParseErrorMessage(err error, raw string) string {
	return fmt.Sprintf("Parsing error: %v | Raw: %s", err, util.Prefix(raw, constants.TextLimits.RawPreview))
}
