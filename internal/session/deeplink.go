package session

import (
	"net/url"
	"strings"

	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// Query parameters carrying a shared video or reel id
const (
	ParamVideo = "v"
	ParamReel  = "r"
)

// DeepLink is a parsed share link. At most one of VideoID and ReelID is set.
type DeepLink struct {
	VideoID string
	ReelID  string
}

// IsZero reports whether the link selects nothing
func (d DeepLink) IsZero() bool {
	return d.VideoID == "" && d.ReelID == ""
}

// ParseDeepLink reads a query string such as "v=abc" or "?r=xyz". When both
// parameters are present the video wins. Malformed pairs are skipped.
func ParseDeepLink(rawQuery string) DeepLink {
	// ParseQuery keeps every pair it could decode alongside the error.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))

	if id := values.Get(ParamVideo); id != "" {
		return DeepLink{VideoID: id}
	}
	return DeepLink{ReelID: values.Get(ParamReel)}
}

// ShareURL builds the share link for a video on base, using the reel
// parameter for reels
func ShareURL(base string, video models.Video) string {
	param := ParamVideo
	if video.IsReel() {
		param = ParamReel
	}

	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + url.Values{param: {video.ID}}.Encode()
	}
	u.RawQuery = url.Values{param: {video.ID}}.Encode()
	u.Fragment = ""
	return u.String()
}
