package catalog

import (
	"strings"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Canonical reduces a product name to a loose matching key: lowercase, ASCII
// punctuation and spaces removed, the word "does" dropped, one trailing "s"
// trimmed. "Chicago Does Reels" and "chicago reel" share a key.
func Canonical(name string) string {
	t := strings.Map(func(r rune) rune {
		if r == ' ' || strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, strings.ToLower(name))
	t = strings.ReplaceAll(t, "does", "")
	return strings.TrimSuffix(t, "s")
}

// Resolution is the outcome of matching requested names against a catalog.
type Resolution struct {
	// Present holds real catalog names, deduplicated, in request order.
	Present []string
	// Missing holds requested names that matched nothing.
	Missing []string
	// Mapping maps each matched request to its real catalog name.
	Mapping map[string]string
}

// Resolve matches requested product names against the catalog, exactly first
// and by Canonical key second.
func (c Catalog) Resolve(requested []string) Resolution {
	byKey := make(map[string]string, len(c))
	for _, name := range c.Names() {
		key := Canonical(name)
		if _, taken := byKey[key]; !taken {
			byKey[key] = name
		}
	}

	res := Resolution{Mapping: make(map[string]string)}
	seen := make(map[string]bool)
	for _, raw := range requested {
		want := strings.TrimSpace(raw)
		if want == "" {
			continue
		}
		name, ok := want, true
		if _, exact := c[want]; !exact {
			name, ok = byKey[Canonical(want)]
		}
		if !ok {
			res.Missing = append(res.Missing, want)
			continue
		}
		res.Mapping[want] = name
		if !seen[name] {
			seen[name] = true
			res.Present = append(res.Present, name)
		}
	}
	return res
}
