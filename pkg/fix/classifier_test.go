package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		snippet  string
		expected Category
	}{
		{
			name:     "hardcoded api key",
			snippet:  `const API_KEY = "sk-12345";`,
			expected: CategoryHardcodedAPIKey,
		},
		{
			name:     "hardcoded secret key",
			snippet:  `var SECRET_KEY = "abcdef";`,
			expected: CategoryHardcodedAPIKey,
		},
		{
			name:     "hardcoded password wins over api key",
			snippet:  `const PASSWORD = "hunter2";`,
			expected: CategoryHardcodedPassword,
		},
		{
			name:     "innerHTML sink",
			snippet:  `element.innerHTML = userInput;`,
			expected: CategoryXSSUnsafeWrite,
		},
		{
			name:     "outerHTML sink",
			snippet:  `node.outerHTML = data;`,
			expected: CategoryXSSUnsafeWrite,
		},
		{
			name:     "document.write sink",
			snippet:  `document.write(payload);`,
			expected: CategoryXSSUnsafeWrite,
		},
		{
			name:     "eval call",
			snippet:  `eval(userCode);`,
			expected: CategoryCodeInjection,
		},
		{
			name:     "function constructor",
			snippet:  `const f = new Function(body);`,
			expected: CategoryCodeInjection,
		},
		{
			name:     "math random",
			snippet:  `const token = Math.random().toString(36);`,
			expected: CategoryInsecureRandom,
		},
		{
			name:     "plain code is unclassified",
			snippet:  `const total = price * quantity;`,
			expected: CategoryUnclassified,
		},
		{
			name:     "empty snippet is unclassified",
			snippet:  "",
			expected: CategoryUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.snippet))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	snippet := `const PASSWORD = "hunter2"; element.innerHTML = x;`
	first := Classify(snippet)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(snippet))
	}
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, KnownCategory(CategoryHardcodedAPIKey))
	assert.True(t, KnownCategory(CategoryInsecureRandom))
	assert.True(t, KnownCategory(CategoryUnclassified))
	assert.False(t, KnownCategory(Category("made-up")))
}
