package fix

import (
	"regexp"
	"strings"
)

var categoryPatterns = map[Category]*regexp.Regexp{
	CategoryHardcodedPassword: regexp.MustCompile(`(?i)\b(password|passwd|pwd)\b\s*[:=]+\s*["'][^"']+["']`),

	CategoryHardcodedAPIKey: regexp.MustCompile(`(?i)\b(api[_-]?key|apikey|access[_-]?key|secret[_-]?key|auth[_-]?token)\b\s*[:=]+\s*["'][^"']+["']`),

	CategoryXSSUnsafeWrite: regexp.MustCompile(`(?i)(\.(innerHTML|outerHTML)\s*[+]?=|document\.write(ln)?\s*\()`),

	CategoryCodeInjection: regexp.MustCompile(`(?i)(\beval\s*\(|new\s+Function\s*\(|set(Timeout|Interval)\s*\(\s*["'])`),

	CategoryInsecureRandom: regexp.MustCompile(`\bMath\.random\s*\(`),
}

// categoryOrder fixes the classification precedence. More specific categories
// come before broader ones: a snippet matching both the password and the
// api-key pattern is a password finding.
var categoryOrder = []Category{
	CategoryHardcodedPassword,
	CategoryHardcodedAPIKey,
	CategoryXSSUnsafeWrite,
	CategoryCodeInjection,
	CategoryInsecureRandom,
}

// Classify maps a snippet to exactly one category, defaulting to
// CategoryUnclassified when no pattern matches. Pure, no I/O.
func Classify(snippet string) Category {
	if strings.TrimSpace(snippet) == "" {
		return CategoryUnclassified
	}
	for _, category := range categoryOrder {
		if categoryPatterns[category].MatchString(snippet) {
			return category
		}
	}
	return CategoryUnclassified
}

// KnownCategory reports whether c is a member of the closed category set.
func KnownCategory(c Category) bool {
	if c == CategoryUnclassified {
		return true
	}
	_, ok := categoryPatterns[c]
	return ok
}
