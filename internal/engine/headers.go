package engine

import (
	"sort"
	"strings"

	rerrors "github.com/r2ctl/r2ctl/internal/errors"
)

// MergeHeaders combines descriptor headers with key=value pairs from repeated
// --sign-header flags. Later pairs override earlier ones and the flag pairs
// override the base set. The merge is fully computed before signing or
// dispatch begins.
func MergeHeaders(base map[string]string, pairs []string) (map[string]string, error) {
	merged := make(map[string]string, len(base)+len(pairs))
	for k, v := range base {
		merged[k] = v
	}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, rerrors.UserError{
				Message:    "invalid header '" + pair + "'",
				Suggestion: "use --sign-header key=value",
			}
		}
		merged[key] = value
	}
	return merged, nil
}

// sortedKeys returns map keys in stable order for rendering.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
