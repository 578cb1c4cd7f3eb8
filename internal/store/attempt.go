package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// attemptRepo implements AttemptRepo.
type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Create(ctx context.Context, a *Attempt) (*Attempt, error) {
	answers := a.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	query, args := builder.Insert(attemptsTable).
		Columns("quiz_id", "score", "total", "user_answers", "created_at").
		Values(a.QuizID, a.Score, a.Total, string(raw), created).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("attempt id: %w", err)
	}

	out := *a
	out.ID = id
	out.Answers = answers
	out.CreatedAt = created
	return &out, nil
}

func (r *attemptRepo) ListByQuiz(ctx context.Context, quizID int64, opts QueryOpts) ([]Attempt, error) {
	t := builder.Table(attemptsTable)
	s := builder.Select(
		t.C("id"), t.C("quiz_id"), t.C("score"), t.C("total"),
		t.C("user_answers"), t.C("created_at"),
	).From(t).Where(entsql.EQ(t.C("quiz_id"), quizID))
	applyOpts(s, t, "created_at", opts)
	s.OrderBy(entsql.Desc(t.C("id")))

	query, args := s.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a   Attempt
			raw string
		)
		if err := rows.Scan(&a.ID, &a.QuizID, &a.Score, &a.Total, &raw, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for attempt %d: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
