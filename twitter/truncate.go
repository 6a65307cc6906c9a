package twitter

import (
	"github.com/rivo/uniseg"
)

// MaxPostLength is the platform's per-post limit, counted in grapheme
// clusters rather than bytes or runes.
const MaxPostLength = 280

// TruncateText cuts s to at most max grapheme clusters, replacing the tail
// with "..." when it has to cut. Counting graphemes keeps emoji and
// combining sequences intact at the boundary.
func TruncateText(s string, max int) string {
	if max <= 0 {
		return ""
	}

	// byte offsets just past the (max-3)rd and max'th graphemes
	ellipsisCut := -1
	hardCut := -1
	count := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		count++
		if count == max-3 {
			_, ellipsisCut = gr.Positions()
		}
		if count == max {
			_, hardCut = gr.Positions()
		}
		if count > max {
			if ellipsisCut >= 0 {
				return s[:ellipsisCut] + "..."
			}
			// no room for an ellipsis at tiny limits
			return s[:hardCut]
		}
	}
	return s
}
