package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// LLMRequest captures one provider call.
type LLMRequest struct {
	RequestID    string
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
}

// LLMRequestRecord is a stored LLMRequest.
type LLMRequestRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequest
}

// QueryOpts filters QueryLLMEvents. Zero values mean no filter.
type QueryOpts struct {
	Limit   int
	Purpose string
}

// PurposeUsage aggregates calls sharing a purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls served by one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Repo records and reads LLM request events.
type Repo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequest) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// GetLLMEvent returns nil without error when id does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

var _ Repo = (*Store)(nil)

const eventColumns = `id, created_at, request_id, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequest) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO llm_request_events (
		created_at, request_id, provider, model, purpose,
		input_tokens, output_tokens, latency_ms, success, error_message,
		request_body, response_body
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano),
		data.RequestID, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
		data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns events newest first.
func (s *Store) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}

	q := "SELECT " + eventColumns + " FROM llm_request_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		rec, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *Store) GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM llm_request_events WHERE id = ?", id)
	rec, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (s *Store) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT purpose, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT model, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events WHERE success = 1 GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(sc scanner) (*LLMRequestRecord, error) {
	var (
		rec LLMRequestRecord
		ts  string
	)
	err := sc.Scan(&rec.ID, &ts, &rec.RequestID, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage,
		&rec.RequestBody, &rec.ResponseBody)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parse event timestamp %q: %w", ts, err)
	}
	return &rec, nil
}
