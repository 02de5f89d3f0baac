package registry

import (
	"fmt"
	"os"
	"regexp"
)

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Lookup resolves a placeholder name. It matches os.LookupEnv.
type Lookup func(key string) (string, bool)

// Render replaces every {{NAME}} in text with lookup(NAME). Unresolved
// placeholders are reported together.
func Render(text string, lookup Lookup) (string, error) {
	var missing []string
	seen := make(map[string]bool)

	out := placeholderRegex.ReplaceAllStringFunc(text, func(match string) string {
		key := match[2 : len(match)-2]
		if val, ok := lookup(key); ok {
			return val
		}
		if !seen[key] {
			seen[key] = true
			missing = append(missing, key)
		}
		return match
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("registry missing params: %v", missing)
	}
	return out, nil
}

func envLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}
