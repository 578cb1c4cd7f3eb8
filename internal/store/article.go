package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// articleRepo implements ArticleRepo.
type articleRepo struct {
	db *sql.DB
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func selectArticles() (*entsql.Selector, *entsql.SelectTable) {
	t := builder.Table(articlesTable)
	s := builder.Select(
		t.C("id"), t.C("url"), t.C("title"),
		t.C("scraped_text"), t.C("raw_html"), t.C("created_at"),
	).From(t)
	return s, t
}

func scanArticle(row rowScanner) (*Article, error) {
	var a Article
	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.ScrapedText, &a.RawHTML, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) GetByURL(ctx context.Context, url string) (*Article, error) {
	s, t := selectArticles()
	query, args := s.Where(entsql.EQ(t.C("url"), url)).Limit(1).Query()

	a, err := scanArticle(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query article by url: %w", err)
	}
	return a, nil
}

func (r *articleRepo) Get(ctx context.Context, id int64) (*Article, error) {
	s, t := selectArticles()
	query, args := s.Where(entsql.EQ(t.C("id"), id)).Limit(1).Query()

	a, err := scanArticle(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query article %d: %w", id, err)
	}
	return a, nil
}

func (r *articleRepo) Create(ctx context.Context, a *Article) (*Article, error) {
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	query, args := builder.Insert(articlesTable).
		Columns("url", "title", "scraped_text", "raw_html", "created_at").
		Values(a.URL, a.Title, a.ScrapedText, a.RawHTML, created).
		OnConflict(entsql.ConflictColumns("url"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	// Re-read by key so a losing concurrent writer returns the winner's row.
	stored, err := r.GetByURL(ctx, a.URL)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("article %q missing after insert", a.URL)
	}
	return stored, nil
}
