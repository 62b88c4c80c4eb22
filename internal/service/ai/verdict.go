package ai

import "strings"

// fallbackPlanName is used when the model said YES but named no plan.
const fallbackPlanName = "a tariff plan"

// Verdict is the parsed result of a terminator check.
type Verdict struct {
	Selected bool
	Plan     string
}

// ParseVerdict extracts a verdict from raw terminator output. The parser is a
// thin prefix test: any text starting with "YES" (case-insensitively) is
// affirmative, with the plan name taken from whatever follows the first colon
// (or the YES itself). The model's claim is not re-verified here; strictness
// lives entirely in the prompt.
func ParseVerdict(raw string) Verdict {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToUpper(text), "YES") {
		return Verdict{}
	}

	rest := text[len("YES"):]
	if idx := strings.Index(text, ":"); idx >= 0 {
		rest = text[idx+1:]
	}

	plan := strings.TrimSpace(strings.Trim(strings.TrimSpace(rest), ": .-"))
	if plan == "" {
		plan = fallbackPlanName
	}

	return Verdict{Selected: true, Plan: plan}
}
