package ai

import "fmt"

// BuildPrompt returns the instruction sent to the model for snippet id. The
// shape is fixed: the identifier names the backend feature to implement and
// the model is told to answer with code only.
func BuildPrompt(id, language string) string {
	if language == "" {
		language = "JavaScript"
	}
	return fmt.Sprintf(
		"You are an expert backend developer working with Node.js and Express.js. "+
			"Write a single %s code snippet using ES module syntax that implements the backend feature %q. "+
			"Return only the code, with no explanation, no surrounding prose, and no markdown fences.",
		language, id,
	)
}
