package fix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	snippet := `element.innerHTML = userInput;`
	prompt := BuildPrompt(snippet, CategoryXSSUnsafeWrite)

	assert.Contains(t, prompt.System, "exactly one corrected line")
	assert.Contains(t, prompt.User, "unsafe HTML sink")
	assert.Contains(t, prompt.User, "Vulnerable: element.innerHTML = userInput;")
	assert.Contains(t, prompt.User, "Fixed: element.textContent = userInput;")
	assert.True(t, strings.HasSuffix(prompt.User, snippet))
}

func TestBuildPromptUnclassified(t *testing.T) {
	snippet := `const total = price * quantity;`
	prompt := BuildPrompt(snippet, CategoryUnclassified)

	assert.Contains(t, prompt.User, "security best practice")
	assert.NotContains(t, prompt.User, "Example:")
	assert.True(t, strings.HasSuffix(prompt.User, snippet))
}

func TestBuildPromptEveryCategoryHasExample(t *testing.T) {
	for _, category := range categoryOrder {
		prompt := BuildPrompt("x = 1;", category)
		assert.Contains(t, prompt.User, "Example:", "category %s", category)
	}
}
