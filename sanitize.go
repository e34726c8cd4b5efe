package blockweaver

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	blockClassRegexp  = regexp.MustCompile(`^[A-Za-z0-9_ -]+$`)
	colorStyleRegexp  = regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgba?\([\d\s.,%]+\)|[a-z]+)$`)
	backgroundURLExpr = regexp.MustCompile(`^url\(\s*['"]?(https?://|/)[^'"()\s]*['"]?\s*\)$`)
)

// DefaultSanitizer is a user-content policy that keeps everything the
// library blocks persist: block classes, data attributes, colors and
// background images.
func DefaultSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowDataAttributes()

	p.AllowAttrs("class").Matching(blockClassRegexp).Globally()
	p.AllowAttrs("title").Globally()
	p.AllowElements("section")

	p.AllowStyles("color", "background-color").Matching(colorStyleRegexp).Globally()
	p.AllowStyles("background-image").MatchingHandler(backgroundURLExpr.MatchString).Globally()
	return p
}
