package domain

import (
	"strings"

	"github.com/kapu/content-tagger-go/internal/util"
)

// PlatformTag is the mediaType value understood by the analytics API.
type PlatformTag string

const (
	PlatformInstagram PlatformTag = "INSTAGRAM"
	PlatformYouTube   PlatformTag = "YOUTUBE"
	PlatformTikTok    PlatformTag = "TIKTOK"
	PlatformFacebook  PlatformTag = "FACEBOOK"
	PlatformTwitter   PlatformTag = "TWITTER"
	PlatformLinkedIn  PlatformTag = "LINKEDIN"
)

var platformAliases = map[string]PlatformTag{
	"instagram": PlatformInstagram,
	"ig":        PlatformInstagram,
	"youtube":   PlatformYouTube,
	"yt":        PlatformYouTube,
	"tiktok":    PlatformTikTok,
	"tt":        PlatformTikTok,
	"facebook":  PlatformFacebook,
	"fb":        PlatformFacebook,
	"twitter":   PlatformTwitter,
	"x":         PlatformTwitter,
	"linkedin":  PlatformLinkedIn,
}

// ResolvePlatform maps a spreadsheet platform value to its tag. Unknown
// values pass through uppercased.
func ResolvePlatform(raw string) PlatformTag {
	if tag, ok := platformAliases[util.Normalize(raw)]; ok {
		return tag
	}
	return PlatformTag(strings.ToUpper(strings.TrimSpace(raw)))
}

func (p PlatformTag) String() string {
	return string(p)
}
