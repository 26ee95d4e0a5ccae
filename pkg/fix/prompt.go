package fix

import (
	"fmt"
	"strings"
)

// systemDirective pins the engine to a single corrected line. The constraints
// are restated in imperative form because models reliably ignore any one of
// them on its own.
const systemDirective = `You are a security code repair tool. ` +
	`Return exactly one corrected line of code. ` +
	`Do not use markdown fencing or backticks. ` +
	`Do not explain the change. ` +
	`Preserve every identifier name from the input.`

type promptExample struct {
	instruction string
	before      string
	after       string
}

var promptExamples = map[Category]promptExample{
	CategoryHardcodedAPIKey: {
		instruction: "Replace the hardcoded API key with an environment variable lookup.",
		before:      `const API_KEY = "sk-12345";`,
		after:       `const API_KEY = process.env.API_KEY || "default_api_key";`,
	},
	CategoryHardcodedPassword: {
		instruction: "Replace the hardcoded password with an environment variable lookup.",
		before:      `const password = "hunter2";`,
		after:       `const password = process.env.PASSWORD || "default_password";`,
	},
	CategoryXSSUnsafeWrite: {
		instruction: "Replace the unsafe HTML sink with a safe text assignment.",
		before:      `element.innerHTML = userInput;`,
		after:       `element.textContent = userInput;`,
	},
	CategoryCodeInjection: {
		instruction: "Remove the dynamic code execution.",
		before:      `const data = eval(userJson);`,
		after:       `const data = JSON.parse(userJson);`,
	},
	CategoryInsecureRandom: {
		instruction: "Replace the weak random source with a cryptographic one.",
		before:      `const token = Math.random();`,
		after:       `const token = crypto.getRandomValues(new Uint32Array(1))[0] / 4294967296;`,
	},
}

// BuildPrompt turns a snippet and its category into the engine instruction
// pair. Total for every category: unclassified snippets get a generic
// best-practice instruction with no example.
func BuildPrompt(snippet string, category Category) Prompt {
	var b strings.Builder

	example, ok := promptExamples[category]
	if ok {
		b.WriteString(example.instruction)
		b.WriteString("\n\nExample:\n")
		fmt.Fprintf(&b, "Vulnerable: %s\n", example.before)
		fmt.Fprintf(&b, "Fixed: %s\n", example.after)
	} else {
		b.WriteString("Apply the relevant security best practice to this line.\n")
	}

	b.WriteString("\nFix this line:\n")
	b.WriteString(snippet)

	return Prompt{
		System: systemDirective,
		User:   b.String(),
	}
}
