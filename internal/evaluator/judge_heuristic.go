package evaluator

import (
	"context"
	"encoding/json"
	"strings"
)

// HeuristicJudge is a local, deterministic judge used when no external
// scoring service is configured and as a fixture in tests. It scores on
// length and vocabulary variety, which is crude but stable.
type HeuristicJudge struct{}

var _ Judge = (*HeuristicJudge)(nil)

// Score produces a structured verdict without any network call.
func (HeuristicJudge) Score(_ context.Context, req Request) (string, error) {
	words := strings.Fields(req.CommentText)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(strings.Trim(w, ".,!?;:\"'"))] = struct{}{}
	}

	score := len(words)
	if score > 60 {
		score = 60
	}
	// Variety bonus: up to 40 points for a rich vocabulary.
	if len(words) > 0 {
		score += 40 * len(unique) / len(words) * len(words) / (len(words) + 10)
	}
	if score > 100 {
		score = 100
	}

	out, err := json.Marshal(map[string]interface{}{
		"score":             score,
		"is_spam_or_copied": false,
		"reasoning":         "heuristic: length and vocabulary variety",
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
