package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var quizEventColumns = []string{
	"id", "timestamp", "run_id", "action", "question_index", "correct", "seconds", "score",
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder.Insert(tableQuizEvents).
		Columns(quizEventColumns[1:]...).
		Values(ts.UnixMilli(), data.RunID, data.Action, data.QuestionIndex, data.Correct, data.Seconds, data.Score).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEvent, error) {
	sel := builder.Select(quizEventColumns...).
		From(builder.Table(tableQuizEvents)).
		OrderBy("id")
	applyOpts(sel, opts)
	if opts.RunID != "" {
		sel.Where(entsql.EQ("run_id", opts.RunID))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var events []QuizEvent
	for rows.Next() {
		var (
			e  QuizEvent
			ts int64
		)
		if err := rows.Scan(&e.ID, &ts, &e.RunID, &e.Action, &e.QuestionIndex, &e.Correct, &e.Seconds, &e.Score); err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
