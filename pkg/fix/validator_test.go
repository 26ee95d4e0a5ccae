package fix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		candidate string
		category  Category
	}{
		{
			name:      "safe sink replacement",
			original:  `element.innerHTML = userInput;`,
			candidate: `element.textContent = userInput;`,
			category:  CategoryXSSUnsafeWrite,
		},
		{
			name:      "env lookup for api key",
			original:  `const API_KEY = "sk-12345";`,
			candidate: `const API_KEY = process.env.API_KEY;`,
			category:  CategoryHardcodedAPIKey,
		},
		{
			name:      "crypto random replacement",
			original:  `const n = Math.random();`,
			candidate: `const n = crypto.getRandomValues(new Uint32Array(1))[0];`,
			category:  CategoryInsecureRandom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Validate(tt.original, tt.candidate, tt.category)
			assert.True(t, verdict.Accepted, "reasons: %v", verdict.Reasons)
			assert.Empty(t, verdict.Reasons)
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		candidate string
		category  Category
		reason    string
	}{
		{
			name:      "empty candidate",
			original:  `element.innerHTML = x;`,
			candidate: "",
			category:  CategoryXSSUnsafeWrite,
			reason:    "candidate is empty",
		},
		{
			name:      "multi line candidate",
			original:  `element.innerHTML = x;`,
			candidate: "element.textContent = x;\nimport html",
			category:  CategoryXSSUnsafeWrite,
			reason:    "candidate spans multiple lines",
		},
		{
			name:      "oversized candidate",
			original:  `element.innerHTML = x;`,
			candidate: "element.textContent = " + strings.Repeat("x", 200) + ";",
			category:  CategoryXSSUnsafeWrite,
			reason:    "candidate exceeds 200 characters",
		},
		{
			name:      "prose candidate",
			original:  `element.innerHTML = x;`,
			candidate: `rewritten safely`,
			category:  CategoryXSSUnsafeWrite,
			reason:    "candidate has no assignment or member access",
		},
		{
			name:      "foreign language tokens",
			original:  `const KEY = "x";`,
			candidate: `def fix(): KEY = os.environ`,
			category:  CategoryHardcodedAPIKey,
			reason:    `candidate contains disallowed phrase "def "`,
		},
		{
			name:      "declared identifier dropped",
			original:  `const API_KEY = "sk-12345";`,
			candidate: `const key = process.env.KEY;`,
			category:  CategoryHardcodedAPIKey,
			reason:    `declared identifier "API_KEY" missing from candidate`,
		},
		{
			name:      "declaration count changed",
			original:  `element.innerHTML = x;`,
			candidate: `const safe = sanitize(x); element.textContent = safe;`,
			category:  CategoryXSSUnsafeWrite,
			reason:    "declaration count changed from 0 to 1",
		},
		{
			name:      "secret literal survives",
			original:  `const API_KEY = "sk-12345";`,
			candidate: `const API_KEY = decode("sk-12345");`,
			category:  CategoryHardcodedAPIKey,
			reason:    "candidate still contains the hardcoded secret",
		},
		{
			name:      "unsafe sink survives",
			original:  `element.innerHTML = x;`,
			candidate: `element.innerHTML = escapeHTML(x);`,
			category:  CategoryXSSUnsafeWrite,
			reason:    "candidate still uses an unsafe HTML sink",
		},
		{
			name:      "eval survives",
			original:  `eval(code);`,
			candidate: `result = eval(code);`,
			category:  CategoryCodeInjection,
			reason:    "candidate still executes dynamic code",
		},
		{
			name:      "math random survives",
			original:  `const n = Math.random();`,
			candidate: `const n = Math.random() * 2;`,
			category:  CategoryInsecureRandom,
			reason:    "candidate still uses Math.random",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Validate(tt.original, tt.candidate, tt.category)
			assert.False(t, verdict.Accepted)
			assert.Contains(t, verdict.Reasons, tt.reason)
		})
	}
}

func TestValidateAccumulatesReasons(t *testing.T) {
	original := `const API_KEY = "sk-12345";`
	candidate := "here is the fix\nexplained below"

	verdict := Validate(original, candidate, CategoryHardcodedAPIKey)
	assert.False(t, verdict.Accepted)
	assert.GreaterOrEqual(t, len(verdict.Reasons), 3)
}
