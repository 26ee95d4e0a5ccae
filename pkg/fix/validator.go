package fix

import (
	"fmt"
	"regexp"
	"strings"
)

const maxCandidateLength = 200

var (
	declarationPattern = regexp.MustCompile(`\b(?:const|let|var|function)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)

	stringLiteralPattern = regexp.MustCompile(`["']([^"']+)["']`)

	// badPhrases catches explanatory language and tokens from unrelated
	// programming ecosystems. A candidate containing any of them is not a
	// bare code line.
	badPhrases = []string{
		"explanation",
		"note:",
		"here is",
		"i'm sorry",
		"as an ai",
		"#include",
		"using system",
		"public static void",
		"def ",
		"import java",
		"from __future__",
		"fmt.println",
		"package main",
		"<?php",
	}

	assignmentOrAccess = regexp.MustCompile(`[+\-*/%|&]?=[^=]|\.[A-Za-z_$][A-Za-z0-9_$]*`)

	unsafeSinkPattern = regexp.MustCompile(`(?i)(\.(innerHTML|outerHTML)\s*[+]?=|document\.write(ln)?\s*\()`)
)

// Validate decides whether a sanitized generative candidate is an acceptable
// replacement for the original snippet. Every check is evaluated; reasons
// accumulate rather than short-circuit. Pure and deterministic.
func Validate(original, candidate string, category Category) Verdict {
	var reasons []string

	if strings.TrimSpace(candidate) == "" {
		reasons = append(reasons, "candidate is empty")
	}
	if strings.ContainsAny(candidate, "\r\n") {
		reasons = append(reasons, "candidate spans multiple lines")
	}
	if len(candidate) > maxCandidateLength {
		reasons = append(reasons, fmt.Sprintf("candidate exceeds %d characters", maxCandidateLength))
	}
	if !assignmentOrAccess.MatchString(candidate) {
		reasons = append(reasons, "candidate has no assignment or member access")
	}

	lower := strings.ToLower(candidate)
	for _, phrase := range badPhrases {
		if strings.Contains(lower, phrase) {
			reasons = append(reasons, fmt.Sprintf("candidate contains disallowed phrase %q", phrase))
		}
	}

	reasons = append(reasons, checkStructure(original, candidate)...)
	reasons = append(reasons, checkCoherence(original, candidate, category)...)

	return Verdict{
		Accepted: len(reasons) == 0,
		Reasons:  reasons,
	}
}

// checkStructure enforces structural similarity: every identifier declared
// in the original must appear verbatim in the candidate, and the declaration
// counts must match.
func checkStructure(original, candidate string) []string {
	var reasons []string

	originalDecls := declarationPattern.FindAllStringSubmatch(original, -1)
	candidateDecls := declarationPattern.FindAllStringSubmatch(candidate, -1)

	for _, decl := range originalDecls {
		name := decl[1]
		if !strings.Contains(candidate, name) {
			reasons = append(reasons, fmt.Sprintf("declared identifier %q missing from candidate", name))
		}
	}
	if len(originalDecls) != len(candidateDecls) {
		reasons = append(reasons, fmt.Sprintf(
			"declaration count changed from %d to %d", len(originalDecls), len(candidateDecls)))
	}
	return reasons
}

// checkCoherence verifies the candidate is consistent with a fix for its
// category: hardcoded secrets must be gone, unsafe sinks must no longer be
// used, dynamic execution and weak randomness must be removed.
func checkCoherence(original, candidate string, category Category) []string {
	var reasons []string

	switch category {
	case CategoryHardcodedAPIKey, CategoryHardcodedPassword:
		if literal := stringLiteralPattern.FindStringSubmatch(original); literal != nil {
			if strings.Contains(candidate, literal[1]) {
				reasons = append(reasons, "candidate still contains the hardcoded secret")
			}
		}
	case CategoryXSSUnsafeWrite:
		if unsafeSinkPattern.MatchString(candidate) {
			reasons = append(reasons, "candidate still uses an unsafe HTML sink")
		}
	case CategoryCodeInjection:
		if strings.Contains(candidate, "eval(") || strings.Contains(candidate, "new Function(") {
			reasons = append(reasons, "candidate still executes dynamic code")
		}
	case CategoryInsecureRandom:
		if strings.Contains(candidate, "Math.random") {
			reasons = append(reasons, "candidate still uses Math.random")
		}
	}
	return reasons
}
