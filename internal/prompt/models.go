package prompt

import (
	"github.com/kapu/content-tagger-go/internal/constants"
	"github.com/kapu/content-tagger-go/internal/domain"
)

// ContentTaggingData holds the already-normalized profile text.
type ContentTaggingData struct {
	Bio        string
	Posts      [constants.CaptionSlots]string
	Categories []string
}

func NewContentTaggingData(profile domain.ProfileData) ContentTaggingData {
	return ContentTaggingData{
		Bio:        profile.Bio,
		Posts:      profile.Captions,
		Categories: defaultCategories(),
	}
}

func defaultCategories() []string {
	return domain.ContentStyles
}
