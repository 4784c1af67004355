package rsxgen

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"

	"github.com/grindlemire/go-rsx/internal/debug"
)

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

// getMinifier returns the shared style and script minifier.
func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/css", css.Minify)
		minifier.AddFunc("application/javascript", js.Minify)
	})
	return minifier
}

// minifyRaw minifies the content of a style or script element. Content the
// minifier rejects is returned unchanged.
func minifyRaw(tag, content string) string {
	mediatype := "text/css"
	if tag == "script" {
		mediatype = "application/javascript"
	}
	out, err := getMinifier().String(mediatype, content)
	if err != nil {
		debug.Log("minify <%s>: %v, keeping original", tag, err)
		return content
	}
	return out
}
