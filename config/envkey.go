package config

import (
	"strings"
	"unicode"
)

// envKey builds the environment variable of a field path: the upper-cased prefix, then
// every path element in screaming snake case, joined with underscores.
// Prefix "convec_stress" and path [Stack OpsPerSecond] give CONVEC_STRESS_STACK_OPS_PER_SECOND.
func envKey(prefix string, path ...string) string {
	words := make([]string, 0, len(path)+1)
	if prefix = strings.ToUpper(strings.TrimSpace(prefix)); prefix != "" {
		words = append(words, prefix)
	}
	for _, name := range path {
		if name = screamingSnake(name); name != "" {
			words = append(words, name)
		}
	}
	return strings.Join(words, "_")
}

// screamingSnake splits a field name before every upper case letter or digit and on
// '_' or '-', then upper-cases it: OpsPerSecond becomes OPS_PER_SECOND.
func screamingSnake(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + len(name)/3)

	pendingSeparator := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '_' || r == '-':
			pendingSeparator = true
			continue
		case unicode.IsUpper(r) || unicode.IsDigit(r):
			pendingSeparator = true
		}
		if pendingSeparator && sb.Len() > 0 {
			sb.WriteByte('_')
		}
		pendingSeparator = false
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}
