package store

import (
	"context"
	"fmt"
	"time"
)

// LLMRequest captures one LLM API call for the request log.
type LLMRequest struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	CreatedAt    time.Time
}

// RequestLog provides append access to the LLM request log. The llm
// middleware depends on this interface rather than on *Store.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, req LLMRequest) error
}

// AppendLLMRequest records an LLM API call.
func (s *Store) AppendLLMRequest(ctx context.Context, req LLMRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, input_tokens, output_tokens, latency_ms,
			 success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Provider, req.Model, req.Purpose, req.InputTokens, req.OutputTokens,
		req.LatencyMs, req.Success, req.ErrorMessage, req.RequestBody, req.ResponseBody)
	if err != nil {
		return fmt.Errorf("insert llm request: %w", err)
	}
	return nil
}

// LLMStats summarizes the request log for the stats command.
type LLMStats struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// LLMRequestStats aggregates the request log.
func (s *Store) LLMRequestStats(ctx context.Context) (LLMStats, error) {
	var st LLMStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0)
		FROM llm_requests`).
		Scan(&st.Requests, &st.Failures, &st.InputTokens, &st.OutputTokens)
	if err != nil {
		return LLMStats{}, fmt.Errorf("aggregate llm requests: %w", err)
	}
	return st, nil
}
