package quizgen

import (
	"fmt"
	"strings"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

const systemPrompt = `You write short learning quizzes for residents who reported a local civic problem in a Japanese prefecture.

Rules:
- Write exactly 4 multiple-choice questions about the problem and practical ways residents and local government can address it.
- Every question has exactly 4 distinct options and exactly one correct option.
- Distractors should be plausible, not silly.
- Prefer questions about public programs, safety practices and community action over trivia.
- The explanation says in one or two sentences why the correct option is right.
- Keep the language plain and friendly.`

// buildUserMessage constructs the user message from Input.
func buildUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", input.Category.Label())
	if input.SubCategory != "" && input.SubCategory != taxonomy.CatchAllSub {
		fmt.Fprintf(&b, "Sub-category: %s\n", input.SubCategory.Label())
	}
	b.WriteString("\nProblem:\n")
	b.WriteString(strings.TrimSpace(input.Problem))

	return b.String()
}
