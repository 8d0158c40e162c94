// Package evaluator screens comment quality before the points economy sees
// it. Evaluation is delegated to a pluggable judge; verdicts are normalized
// into a score, a spam/copied flag, and a rationale.
package evaluator

import (
	"context"
	"time"
)

// PostContext carries post metadata so the judge can score in context.
type PostContext struct {
	Category string
	Title    string
	Body     string
}

// Verdict is the normalized evaluation result.
//
// Score and Flagged are independent: Score==0 with Flagged=false means the
// judge produced no usable signal and callers should fall back to the
// length-based floor. Flagged=true means spam or copied content.
type Verdict struct {
	Score     int
	Flagged   bool
	Rationale string
}

// Request is the structured payload submitted to a judge.
type Request struct {
	CommentText  string `json:"comment_text"`
	PostCategory string `json:"post_category"`
	PostTitle    string `json:"post_title,omitempty"`
	PostBody     string `json:"post_body,omitempty"`
}

// Judge scores a comment. Implementations return the raw verdict payload,
// which may be structured JSON or free text; parsing happens in Evaluate.
type Judge interface {
	Score(ctx context.Context, req Request) (string, error)
}

// EventSink receives structured evaluation events. The zero behavior
// (nil sink) is to drop events.
type EventSink interface {
	Event(ctx context.Context, name string, fields map[string]interface{})
}

// Evaluator runs the pre-filter, consults the judge, and normalizes its
// verdict.
type Evaluator struct {
	judge   Judge
	filter  *PreFilter
	sink    EventSink
	timeout time.Duration
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithPreFilter replaces the default spam pre-filter.
func WithPreFilter(f *PreFilter) Option {
	return func(e *Evaluator) { e.filter = f }
}

// WithEventSink attaches a structured-event sink for evaluation observability.
func WithEventSink(sink EventSink) Option {
	return func(e *Evaluator) { e.sink = sink }
}

// WithTimeout bounds each judge call. Defaults to 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(e *Evaluator) { e.timeout = d }
}

// New creates an Evaluator backed by the given judge.
func New(judge Judge, opts ...Option) *Evaluator {
	e := &Evaluator{
		judge:   judge,
		filter:  DefaultPreFilter(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate screens commentText against the spam pre-filter and, if it passes,
// submits it to the judge. A judge or transport failure yields a zero score
// without the flag set; failure is not a spam verdict.
func (e *Evaluator) Evaluate(ctx context.Context, commentText string, post PostContext) Verdict {
	if reason, matched := e.filter.Match(commentText); matched {
		e.emit(ctx, "evaluation.prefiltered", map[string]interface{}{"reason": reason})
		return Verdict{Score: 0, Flagged: true, Rationale: "pattern match: " + reason}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.judge.Score(ctx, Request{
		CommentText:  commentText,
		PostCategory: post.Category,
		PostTitle:    post.Title,
		PostBody:     post.Body,
	})
	if err != nil {
		e.emit(ctx, "evaluation.judge_failed", map[string]interface{}{"error": err.Error()})
		return Verdict{Score: 0, Flagged: false, Rationale: "judge unavailable: " + err.Error()}
	}

	verdict := parseVerdict(raw)
	e.emit(ctx, "evaluation.completed", map[string]interface{}{
		"score":   verdict.Score,
		"flagged": verdict.Flagged,
	})
	return verdict
}

func (e *Evaluator) emit(ctx context.Context, name string, fields map[string]interface{}) {
	if e.sink == nil {
		return
	}
	e.sink.Event(ctx, name, fields)
}
