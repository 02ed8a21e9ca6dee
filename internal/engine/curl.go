package engine

import (
	"strings"
)

// curlCommand renders a ready-to-run curl invocation for the given method,
// URL, and headers. Headers appear in sorted order so the output is stable.
func curlCommand(method, rawURL string, headers map[string]string) string {
	parts := []string{"curl", "-X", method}
	for _, key := range sortedKeys(headers) {
		parts = append(parts, "-H", shellQuote(key+": "+headers[key]))
	}
	parts = append(parts, shellQuote(rawURL))
	return strings.Join(parts, " ")
}

// shellQuote single-quotes a string for the shell, escaping embedded single
// quotes so the line stays runnable verbatim.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
