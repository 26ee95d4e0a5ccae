package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name     string
		snippet  string
		category Category
		expected string
		matched  bool
	}{
		{
			name:     "api key becomes env lookup",
			snippet:  `const API_KEY = "sk-12345";`,
			category: CategoryHardcodedAPIKey,
			expected: `const API_KEY = process.env.API_KEY || "default_api_key";`,
			matched:  true,
		},
		{
			name:     "api key without trailing semicolon",
			snippet:  `let apiKey = "sk-99"`,
			category: CategoryHardcodedAPIKey,
			expected: `let apiKey = process.env.apiKey || "default_api_key";`,
			matched:  true,
		},
		{
			name:     "indentation is preserved",
			snippet:  `    const API_KEY = "sk-12345";`,
			category: CategoryHardcodedAPIKey,
			expected: `    const API_KEY = process.env.API_KEY || "default_api_key";`,
			matched:  true,
		},
		{
			name:     "password uses its own default",
			snippet:  `var PASSWORD = "hunter2";`,
			category: CategoryHardcodedPassword,
			expected: `var PASSWORD = process.env.PASSWORD || "default_password";`,
			matched:  true,
		},
		{
			name:     "innerHTML becomes textContent",
			snippet:  `element.innerHTML = userInput;`,
			category: CategoryXSSUnsafeWrite,
			expected: `element.textContent = userInput;`,
			matched:  true,
		},
		{
			name:     "outerHTML becomes textContent",
			snippet:  `node.outerHTML = data;`,
			category: CategoryXSSUnsafeWrite,
			expected: `node.textContent = data;`,
			matched:  true,
		},
		{
			name:     "eval becomes JSON.parse",
			snippet:  `const obj = eval(payload);`,
			category: CategoryCodeInjection,
			expected: `const obj = JSON.parse(payload);`,
			matched:  true,
		},
		{
			name:     "math random becomes crypto",
			snippet:  `const n = Math.random();`,
			category: CategoryInsecureRandom,
			expected: `const n = crypto.getRandomValues(new Uint32Array(1))[0] / 4294967296;`,
			matched:  true,
		},
		{
			name:     "unclassified has no rule",
			snippet:  `const total = price * quantity;`,
			category: CategoryUnclassified,
			matched:  false,
		},
		{
			name:     "classified snippet the rule cannot handle",
			snippet:  `config.apiKey = "sk-12345";`,
			category: CategoryHardcodedAPIKey,
			matched:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Rewrite(tt.snippet, tt.category)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestRewriteIsReproducible(t *testing.T) {
	snippet := `const API_KEY = "sk-12345";`
	first, ok := Rewrite(snippet, CategoryHardcodedAPIKey)
	assert.True(t, ok)
	for i := 0; i < 10; i++ {
		got, ok := Rewrite(snippet, CategoryHardcodedAPIKey)
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
}
