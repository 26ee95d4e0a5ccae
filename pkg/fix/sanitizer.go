package fix

import (
	"regexp"
	"strings"
)

var (
	fenceLine = regexp.MustCompile("(?m)^\\s*```[a-zA-Z0-9]*\\s*$")

	boilerplatePrefixes = []string{
		"here is the fixed code:",
		"here is the corrected line:",
		"here's the fix:",
		"fixed code:",
		"fixed line:",
		"corrected:",
		"fix:",
		"answer:",
	}

	boilerplateSuffixes = []string{
		"let me know if you need anything else.",
		"hope this helps!",
		"hope this helps.",
	}

	explanatoryMarkers = []string{
		"explanation",
		"note:",
		"this change",
		"the fix",
		"i replaced",
		"i changed",
	}

	codeLikeToken = regexp.MustCompile(`[+\-*/%|&]?=[^=]|[A-Za-z_$][A-Za-z0-9_$]*\s*\(|\.[A-Za-z_$][A-Za-z0-9_$]*`)

	importLikeToken = regexp.MustCompile(`\b(import|require|include|using|from)\b`)
)

// Sanitize extracts a single candidate code line from a raw engine reply.
// An empty return means no acceptable line was found, which the orchestrator
// treats as "generative candidate absent", not as an error. The original
// snippet is consulted only to decide whether an import-like token in the
// reply is foreign.
func Sanitize(raw, original string) string {
	text := fenceLine.ReplaceAllString(raw, "")
	text = strings.ReplaceAll(text, "`", "")

	line := selectCandidateLine(text)
	if line == "" {
		return ""
	}

	line = stripBoilerplate(line)
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	line = truncateForeignImport(line, original)
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	if needsTerminator(line) {
		line += ";"
	}
	return line
}

func selectCandidateLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		candidate := stripBoilerplate(strings.TrimSpace(line))
		if candidate == "" {
			continue
		}
		lower := strings.ToLower(candidate)
		if containsAny(lower, explanatoryMarkers) {
			continue
		}
		if codeLikeToken.MatchString(candidate) {
			return candidate
		}
	}
	return ""
}

func stripBoilerplate(line string) string {
	lower := strings.ToLower(line)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(lower, prefix) {
			line = strings.TrimSpace(line[len(prefix):])
			lower = strings.ToLower(line)
		}
	}
	for _, suffix := range boilerplateSuffixes {
		if strings.HasSuffix(lower, suffix) {
			line = strings.TrimSpace(line[:len(line)-len(suffix)])
			lower = strings.ToLower(line)
		}
	}
	return line
}

func truncateForeignImport(line, original string) string {
	loc := importLikeToken.FindStringIndex(line)
	if loc == nil {
		return line
	}
	token := line[loc[0]:loc[1]]
	if strings.Contains(original, token) {
		return line
	}
	return strings.TrimSpace(line[:loc[0]])
}

func needsTerminator(line string) bool {
	if strings.HasSuffix(line, ";") || strings.HasSuffix(line, "}") {
		return false
	}
	if strings.HasSuffix(line, "{") || strings.HasSuffix(line, ",") {
		return false
	}
	return strings.Contains(line, "=") || strings.HasSuffix(line, ")")
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
