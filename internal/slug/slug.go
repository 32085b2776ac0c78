// internal/slug/slug.go
//
// Slug and path helpers.
//
// • Make(text) ─ converts arbitrary text into a URL-safe slug restricted
//   to ASCII a-z, 0-9 and “-”.
// • BuildPath(parent, slug) ─ joins parent path + slug with a single “/”
//   and guarantees exactly one leading slash.
//
// Rules (Make)
// ------------
// 1. Lower-case everything.
// 2. Drop every character outside [a-z0-9], whitespace, and “-”.  That
//    strips apostrophes, punctuation, emoji, and non-ASCII letters, so
//    "Powell's Books" → "powells-books", not "powell-s-books".
// 3. Convert each run of whitespace or “-” to one “-”.
// 4. Trim leading / trailing “-”.
// 5. Empty input (or input that strips to nothing) yields "".  Callers
//    that need a token must fall back themselves — the detail-page URL
//    builder falls back to the numeric id.
//
// Notes
// -----
// • Make is idempotent: Make(Make(x)) == Make(x) for every input.
// • No Unicode transliteration; non-ASCII letters are dropped on purpose
//   so that slugs stay stable even when upstream data gains accents.

package slug

import (
	"strings"
	"unicode"
)

// Make converts text → lower-kebab ASCII.  Never panics, for any input.
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastWasHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasHyphen = false
		case r == '-' || unicode.IsSpace(r):
			// Runs of separators collapse; a leading run is dropped.
			if !lastWasHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastWasHyphen = true
			}
		default:
			// Punctuation and non-ASCII are removed, not dashed.
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// BuildPath joins parent + slug ensuring exactly one leading slash and no
// duplicate separators.
func BuildPath(parent, slug string) string {
	parent = strings.Trim(parent, "/")
	slug = strings.Trim(slug, "/")

	switch {
	case parent == "" && slug == "":
		return "/"
	case parent == "":
		return "/" + slug
	case slug == "":
		return "/" + parent
	default:
		return "/" + parent + "/" + slug
	}
}
