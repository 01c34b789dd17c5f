package domain

import "encoding/json"

// ContentStyles is the closed vocabulary offered to the model.
var ContentStyles = []string{
	"Fashion",
	"Lifestyle",
	"Travel",
	"Beauty",
	"Health & Wellness",
	"Parenting & Kids",
	"Food",
	"Finance",
	"Business",
	"Sports",
	"Fitness",
	"Entrepreneurship",
	"Home Appliances",
	"DIY & Crafts",
	"Education & Learning",
	"Tech & Gadgets",
	"Entertainment",
	"Personal",
}

var contentStyleSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ContentStyles))
	for _, s := range ContentStyles {
		set[s] = struct{}{}
	}
	return set
}()

func IsContentStyle(label string) bool {
	_, ok := contentStyleSet[label]
	return ok
}

// ClassificationResult is one element of the /process response array.
// Extra holds any additional keys the model returned; they are encoded
// alongside the named fields, which take precedence on a clash.
type ClassificationResult struct {
	DetectedLanguages []string                   `json:"detected_languages"`
	IsMultilingual    bool                       `json:"is_multilingual"`
	ContentStyle      []string                   `json:"content_style"`
	ProcessedAt       string                     `json:"processed_at"`
	Error             string                     `json:"error"`
	Extra             map[string]json.RawMessage `json:"-"`
}

func (r ClassificationResult) MarshalJSON() ([]byte, error) {
	type plain ClassificationResult
	base, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return base, err
	}

	var named map[string]json.RawMessage
	if err := json.Unmarshal(base, &named); err != nil {
		return nil, err
	}

	merged := make(map[string]json.RawMessage, len(r.Extra)+len(named))
	for k, v := range r.Extra {
		merged[k] = v
	}
	for k, v := range named {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// FailedResult is the shape used for every row-level failure: empty lists,
// not multilingual, and a diagnostic message.
func FailedResult(processedAt, message string) ClassificationResult {
	return ClassificationResult{
		DetectedLanguages: []string{},
		IsMultilingual:    false,
		ContentStyle:      []string{},
		ProcessedAt:       processedAt,
		Error:             message,
	}
}

// Normalized replaces nil slices so they encode as [] rather than null.
func (r ClassificationResult) Normalized() ClassificationResult {
	if r.DetectedLanguages == nil {
		r.DetectedLanguages = []string{}
	}
	if r.ContentStyle == nil {
		r.ContentStyle = []string{}
	}
	return r
}

// FilterContentStyles keeps only labels from ContentStyles and returns the
// dropped ones.
func (r ClassificationResult) FilterContentStyles() (ClassificationResult, []string) {
	kept := make([]string, 0, len(r.ContentStyle))
	var dropped []string
	for _, label := range r.ContentStyle {
		if IsContentStyle(label) {
			kept = append(kept, label)
		} else {
			dropped = append(dropped, label)
		}
	}
	r.ContentStyle = kept
	return r, dropped
}
