package mezink

import (
	"github.com/kapu/content-tagger-go/internal/constants"
	"github.com/kapu/content-tagger-go/internal/domain"
	"github.com/tidwall/gjson"
)

const (
	pathDescription = "data.metaData.description"
	pathTopPosts    = "data.metaData.topEngagementPost"
)

// ExtractBioAndCaptions pulls the bio and up to six top-post captions out of an
// analytics response. Absent or non-string values leave their slot empty.
func ExtractBioAndCaptions(body []byte) domain.ProfileData {
	var profile domain.ProfileData
	if !gjson.ValidBytes(body) {
		return profile
	}

	profile.Bio = stringValue(gjson.GetBytes(body, pathDescription))

	posts := gjson.GetBytes(body, pathTopPosts)
	if !posts.IsArray() {
		return profile
	}

	for i, post := range posts.Array() {
		if i >= constants.CaptionSlots {
			break
		}
		profile.Captions[i] = stringValue(post.Get("caption"))
	}

	return profile
}

func stringValue(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}
