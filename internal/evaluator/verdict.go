package evaluator

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// structuredVerdict is the preferred judge response shape.
type structuredVerdict struct {
	Score          *float64 `json:"score"`
	IsSpamOrCopied *bool    `json:"is_spam_or_copied"`
	IsSpam         *bool    `json:"is_spam"`
	IsCopied       *bool    `json:"is_copied"`
	Reasoning      string   `json:"reasoning"`
}

var (
	scorePattern  = regexp.MustCompile(`(?i)\bscore\b[^0-9]{0,10}(\d{1,3})`)
	spamPattern   = regexp.MustCompile(`(?i)\bspam\s*[:=]?\s*(yes|true)\b|\bis\s+spam\b`)
	copiedPattern = regexp.MustCompile(`(?i)\bcopied\s*[:=]?\s*(yes|true)\b|\bis\s+copied\b`)
)

// parseVerdict normalizes a raw judge payload. Structured JSON is preferred;
// free text falls back to pattern extraction. Missing score means 0, missing
// flags mean false, and either the spam or copied flag collapses the verdict
// to flagged with a zero score.
func parseVerdict(raw string) Verdict {
	score, spam, copied, rationale := extractFields(raw)

	if spam || copied {
		if rationale == "" {
			rationale = "judged spam or copied"
		}
		return Verdict{Score: 0, Flagged: true, Rationale: rationale}
	}
	return Verdict{Score: clampScore(score), Flagged: false, Rationale: rationale}
}

func extractFields(raw string) (score int, spam, copied bool, rationale string) {
	trimmed := strings.TrimSpace(raw)

	// Some judges wrap JSON in markdown fences.
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var sv structuredVerdict
	if err := json.Unmarshal([]byte(trimmed), &sv); err == nil {
		if sv.Score != nil {
			score = int(*sv.Score)
		}
		if sv.IsSpamOrCopied != nil {
			spam = *sv.IsSpamOrCopied
		}
		if sv.IsSpam != nil {
			spam = spam || *sv.IsSpam
		}
		if sv.IsCopied != nil {
			copied = *sv.IsCopied
		}
		rationale = sv.Reasoning
		// Textual cues still apply when the structured flags were absent.
		if sv.IsSpamOrCopied == nil && sv.IsSpam == nil && !spam {
			spam = spamPattern.MatchString(rationale)
		}
		if sv.IsCopied == nil && !copied {
			copied = copiedPattern.MatchString(rationale)
		}
		return score, spam, copied, rationale
	}

	// Free-text extraction path.
	if m := scorePattern.FindStringSubmatch(trimmed); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			score = n
		}
	}
	spam = spamPattern.MatchString(trimmed)
	copied = copiedPattern.MatchString(trimmed)
	rationale = extractFeedback(trimmed)
	return score, spam, copied, rationale
}

// extractFeedback pulls the feedback section out of a free-text verdict,
// falling back to the whole text.
func extractFeedback(text string) string {
	for _, marker := range []string{"Feedback:", "feedback:", "Reasoning:", "reasoning:"} {
		if idx := strings.Index(text, marker); idx >= 0 {
			return strings.TrimSpace(text[idx+len(marker):])
		}
	}
	return strings.TrimSpace(text)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
