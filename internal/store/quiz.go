package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// quizRepo implements QuizRepo.
type quizRepo struct {
	db *sql.DB
}

func selectQuizzes() (*entsql.Selector, *entsql.SelectTable) {
	t := builder.Table(quizzesTable)
	s := builder.Select(
		t.C("id"), t.C("article_id"), t.C("quiz_json"),
		t.C("llm_model"), t.C("prompt_version"), t.C("created_at"),
	).From(t)
	return s, t
}

func scanQuiz(row rowScanner) (*Quiz, error) {
	var (
		q   Quiz
		raw string
	)
	if err := row.Scan(&q.ID, &q.ArticleID, &raw, &q.Model, &q.PromptVersion, &q.CreatedAt); err != nil {
		return nil, err
	}
	q.Questions = []byte(raw)
	return &q, nil
}

func (r *quizRepo) queryOne(ctx context.Context, column string, value any) (*Quiz, error) {
	s, t := selectQuizzes()
	query, args := s.Where(entsql.EQ(t.C(column), value)).Limit(1).Query()

	q, err := scanQuiz(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query quiz by %s: %w", column, err)
	}
	return q, nil
}

func (r *quizRepo) GetByArticle(ctx context.Context, articleID int64) (*Quiz, error) {
	return r.queryOne(ctx, "article_id", articleID)
}

func (r *quizRepo) Get(ctx context.Context, id int64) (*Quiz, error) {
	return r.queryOne(ctx, "id", id)
}

func (r *quizRepo) Create(ctx context.Context, q *Quiz) (*Quiz, error) {
	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("insert quiz: empty question set")
	}
	created := q.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	query, args := builder.Insert(quizzesTable).
		Columns("article_id", "quiz_json", "llm_model", "prompt_version", "created_at").
		Values(q.ArticleID, string(q.Questions), q.Model, q.PromptVersion, created).
		OnConflict(entsql.ConflictColumns("article_id"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}

	stored, err := r.GetByArticle(ctx, q.ArticleID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("quiz for article %d missing after insert", q.ArticleID)
	}
	return stored, nil
}

func (r *quizRepo) List(ctx context.Context, opts QueryOpts) ([]QuizSummary, error) {
	// Join aliases an unnamed table, so both sides are named up front and the
	// select list refers to the same names.
	q := builder.Table(quizzesTable).As("q")
	a := builder.Table(articlesTable).As("a")

	s := builder.Select(q.C("id"), a.C("title"), a.C("url"), q.C("created_at")).
		From(q).
		Join(a).On(q.C("article_id"), a.C("id"))
	applyOpts(s, q, "created_at", opts)
	s.OrderBy(entsql.Desc(q.C("id")))

	query, args := s.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []QuizSummary
	for rows.Next() {
		var qs QuizSummary
		if err := rows.Scan(&qs.ID, &qs.Title, &qs.URL, &qs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		out = append(out, qs)
	}
	return out, rows.Err()
}

// applyOpts adds the QueryOpts filters to s. timeCol names the timestamp
// column of t.
func applyOpts(s *entsql.Selector, t *entsql.SelectTable, timeCol string, opts QueryOpts) {
	if opts.After > 0 {
		s.Where(entsql.GT(t.C("id"), opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT(t.C("id"), opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE(t.C(timeCol), opts.From))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE(t.C(timeCol), opts.To))
	}
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
}
