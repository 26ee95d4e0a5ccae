package fix

import "regexp"

type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rewriteRules holds one fixed pattern -> replacement rule per category.
// Replacements preserve declared identifier names through capture groups.
// Classification and rewrite patterns may diverge on malformed input; a
// classified snippet the rule does not match is reported as "no rewrite",
// not as an error.
var rewriteRules = map[Category]rewriteRule{
	CategoryHardcodedAPIKey: {
		pattern:     regexp.MustCompile(`^(\s*)(const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*["'][^"']*["']\s*;?\s*$`),
		replacement: `${1}${2} ${3} = process.env.${3} || "default_api_key";`,
	},
	CategoryHardcodedPassword: {
		pattern:     regexp.MustCompile(`^(\s*)(const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*["'][^"']*["']\s*;?\s*$`),
		replacement: `${1}${2} ${3} = process.env.${3} || "default_password";`,
	},
	CategoryXSSUnsafeWrite: {
		pattern:     regexp.MustCompile(`^(\s*)([A-Za-z_$][A-Za-z0-9_$.\[\]]*)\.(?:innerHTML|outerHTML)\s*=\s*(.+?)\s*;?\s*$`),
		replacement: `${1}${2}.textContent = ${3};`,
	},
	CategoryCodeInjection: {
		pattern:     regexp.MustCompile(`\beval\s*\(`),
		replacement: `JSON.parse(`,
	},
	CategoryInsecureRandom: {
		pattern:     regexp.MustCompile(`\bMath\.random\s*\(\s*\)`),
		replacement: `crypto.getRandomValues(new Uint32Array(1))[0] / 4294967296`,
	},
}

// Rewrite applies the category's fixed rule to the snippet. The second
// return is false when the category has no rule or the rule does not match.
// Output is produced with zero network calls and is byte-for-byte
// reproducible for identical input.
func Rewrite(snippet string, category Category) (string, bool) {
	rule, ok := rewriteRules[category]
	if !ok {
		return "", false
	}
	if !rule.pattern.MatchString(snippet) {
		return "", false
	}
	return rule.pattern.ReplaceAllString(snippet, rule.replacement), true
}
