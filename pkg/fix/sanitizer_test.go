package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	original := `element.innerHTML = userInput;`

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "bare code line passes through",
			raw:      `element.textContent = userInput;`,
			expected: `element.textContent = userInput;`,
		},
		{
			name:     "code fences are stripped",
			raw:      "```javascript\nelement.textContent = userInput;\n```",
			expected: `element.textContent = userInput;`,
		},
		{
			name:     "inline backticks are removed",
			raw:      "`element.textContent = userInput;`",
			expected: `element.textContent = userInput;`,
		},
		{
			name:     "boilerplate prefix is stripped",
			raw:      `Here is the fixed code: element.textContent = userInput;`,
			expected: `element.textContent = userInput;`,
		},
		{
			name:     "boilerplate suffix is stripped",
			raw:      `element.textContent = userInput; hope this helps!`,
			expected: `element.textContent = userInput;`,
		},
		{
			name:     "explanatory lines are skipped",
			raw:      "Explanation: the sink was unsafe.\nelement.textContent = userInput;",
			expected: `element.textContent = userInput;`,
		},
		{
			name:     "missing terminator is appended",
			raw:      `element.textContent = userInput`,
			expected: `element.textContent = userInput;`,
		},
		{
			name:     "prose only reply yields nothing",
			raw:      `I cannot rewrite that snippet safely.`,
			expected: "",
		},
		{
			name:     "empty reply yields nothing",
			raw:      "",
			expected: "",
		},
		{
			name:     "whitespace reply yields nothing",
			raw:      "   \n\t\n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.raw, original))
		})
	}
}

func TestSanitizeTruncatesForeignImport(t *testing.T) {
	original := `const API_KEY = "sk-12345";`
	raw := `const API_KEY = process.env.API_KEY; import os`

	got := Sanitize(raw, original)
	assert.Equal(t, `const API_KEY = process.env.API_KEY;`, got)
}

func TestSanitizeKeepsImportTokenPresentInOriginal(t *testing.T) {
	original := `const fs = require("fs"); const KEY = "x";`
	raw := `const fs = require("node:fs");`

	got := Sanitize(raw, original)
	assert.Equal(t, `const fs = require("node:fs");`, got)
}
