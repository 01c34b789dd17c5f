package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kapu/content-tagger-go/internal/constants"
)

// CellString is a spreadsheet cell decoded as text. Numbers and booleans keep
// their literal JSON form; null decodes to "".
type CellString string

func (c *CellString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CellString(s)
		return nil
	}

	// numbers, booleans, and anything else keep their raw literal
	*c = CellString(data)
	return nil
}

func (c CellString) Trimmed() string {
	return strings.TrimSpace(string(c))
}

// Row is one spreadsheet line submitted for tagging.
type Row struct {
	Username     CellString `json:"username"`
	Platform     CellString `json:"platform"`
	Bio          CellString `json:"bio"`
	Caption      CellString `json:"caption"`
	Post1Caption CellString `json:"post1_caption"`
	Post2Caption CellString `json:"post2_caption"`
	Post3Caption CellString `json:"post3_caption"`
	Post4Caption CellString `json:"post4_caption"`
	Post5Caption CellString `json:"post5_caption"`
	Post6Caption CellString `json:"post6_caption"`
}

// BatchRequest is the body of POST /process.
type BatchRequest struct {
	Rows []Row `json:"rows"`
}

// InlineProfile returns the bio and captions supplied in the row itself.
// post1_caption falls back to the generic caption column.
func (r Row) InlineProfile() ProfileData {
	post1 := r.Post1Caption.Trimmed()
	if post1 == "" {
		post1 = r.Caption.Trimmed()
	}

	return ProfileData{
		Bio: r.Bio.Trimmed(),
		Captions: [constants.CaptionSlots]string{
			post1,
			r.Post2Caption.Trimmed(),
			r.Post3Caption.Trimmed(),
			r.Post4Caption.Trimmed(),
			r.Post5Caption.Trimmed(),
			r.Post6Caption.Trimmed(),
		},
	}
}

// ProfileData is the text fed to the classifier. Captions always has exactly
// six slots; missing posts are empty strings.
type ProfileData struct {
	Bio      string
	Captions [constants.CaptionSlots]string
}

func (p ProfileData) IsEmpty() bool {
	if p.Bio != "" {
		return false
	}
	for _, c := range p.Captions {
		if c != "" {
			return false
		}
	}
	return true
}

// Map applies fn to the bio and every caption.
func (p ProfileData) Map(fn func(string) string) ProfileData {
	out := ProfileData{Bio: fn(p.Bio)}
	for i, c := range p.Captions {
		out.Captions[i] = fn(c)
	}
	return out
}
