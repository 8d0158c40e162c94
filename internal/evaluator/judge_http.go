package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/observability"
)

// HTTPJudge submits comments to an external scoring service over JSON HTTP.
// Models are tried in order; rate-limit and unknown-model responses fall
// through to the next entry so a degraded provider never fails the whole
// evaluation on the first attempt.
type HTTPJudge struct {
	BaseURL    string
	APIKey     string
	Models     []string
	HTTPClient *http.Client
}

// NewHTTPJudge creates an HTTPJudge. At least one model must be configured.
func NewHTTPJudge(baseURL, apiKey string, models []string) *HTTPJudge {
	if len(models) == 0 {
		models = []string{"default"}
	}
	return &HTTPJudge{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		APIKey:     apiKey,
		Models:     models,
		HTTPClient: &http.Client{},
	}
}

var _ Judge = (*HTTPJudge)(nil)

// judgeRequest is the wire shape sent to the scoring service.
type judgeRequest struct {
	Model string `json:"model"`
	Request
}

// Score posts the comment to the scoring service, trying each configured
// model in order until one answers.
func (j *HTTPJudge) Score(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for _, model := range j.Models {
		raw, err := j.scoreWithModel(ctx, model, req)
		if err == nil {
			return raw, nil
		}
		if !retryable(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("all judge models failed: %w", lastErr)
}

func (j *HTTPJudge) scoreWithModel(ctx context.Context, model string, req Request) (raw string, err error) {
	ctx, span := observability.StartJudgeSpan(ctx, model)
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		observability.ObserveJudgeLatency(outcome, time.Since(start))
		observability.EndJudgeSpan(span, err)
	}()

	body, err := json.Marshal(judgeRequest{Model: model, Request: req})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, j.BaseURL+"/evaluate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if j.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+j.APIKey)
	}

	resp, err := j.HTTPClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &judgeStatusError{Model: model, Status: resp.StatusCode, Body: string(payload)}
	}
	return string(payload), nil
}

// judgeStatusError is a non-2xx response from the scoring service.
type judgeStatusError struct {
	Model  string
	Status int
	Body   string
}

func (e *judgeStatusError) Error() string {
	return fmt.Sprintf("judge model %s returned status %d", e.Model, e.Status)
}

// retryable reports whether the next model in the fallback list should be
// tried. Rate limits, missing models, and server errors are worth a retry;
// anything else (bad request, auth failure) would fail identically.
func retryable(err error) bool {
	se, ok := err.(*judgeStatusError)
	if !ok {
		// Transport-level failure; a different model may live on a
		// healthy shard.
		return true
	}
	switch se.Status {
	case http.StatusTooManyRequests, http.StatusNotFound:
		return true
	}
	return se.Status >= 500
}
