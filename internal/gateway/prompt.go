package gateway

import (
	"fmt"

	"github.com/coderemark/coderemark/internal/personality"
)

// responseContract pins the output shape. The personality rubric controls
// tone and annotation convention; this controls structure only.
const responseContract = `You are annotating a code snippet with comments.

OUTPUT FORMAT - follow exactly:
- Respond with ONLY a raw JSON object. No markdown fences, no prose before or after.
- The object has exactly two keys:
  "language": the snippet's language as a lowercase string (e.g. "python", "go"). Use "plaintext" if unsure.
  "commentedCode": the complete snippet with your annotations added as comments in that language's comment syntax.
- Preserve the code itself byte for byte; only add comments.
- Escape the code properly for a JSON string value (newlines as \n, quotes as \", backslashes as \\).`

// buildPrompt combines the output contract, the personality rubric, and the
// verbatim snippet into a single prompt string.
func buildPrompt(code string, p personality.Personality) string {
	return fmt.Sprintf("%s\n\n%s\n\nHere is the snippet, verbatim:\n\n%s", responseContract, p.Rubric(), code)
}
