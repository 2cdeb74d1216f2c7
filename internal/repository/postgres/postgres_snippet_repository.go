// Package postgres provides a Postgres-backed implementation of the snippet repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"snipstash/internal/domain"
	"snipstash/internal/repository"
	"snipstash/pkg/logger"
)

// SnippetRepository implements repository.SnippetRepository using Postgres.
type SnippetRepository struct {
	pool *pgxpool.Pool
}

// NewSnippetRepository creates a new Postgres-backed snippet repository.
func NewSnippetRepository(pool *pgxpool.Pool) *SnippetRepository {
	return &SnippetRepository{pool: pool}
}

// EnsureSchema creates required tables if they don't exist. Constraints live in
// the schema itself: non-empty title/code/tag name, unique tag name, and
// cascading foreign keys on the junction table.
func (r *SnippetRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS snippets (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    title TEXT NOT NULL CHECK (btrim(title) <> ''),
    code TEXT NOT NULL CHECK (btrim(code) <> ''),
    language TEXT NOT NULL DEFAULT 'plaintext',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS tags (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name TEXT NOT NULL UNIQUE CHECK (btrim(name) <> '')
);
CREATE TABLE IF NOT EXISTS snippet_tags (
    snippet_id BIGINT NOT NULL REFERENCES snippets (id) ON DELETE CASCADE,
    tag_id BIGINT NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
    PRIMARY KEY (snippet_id, tag_id)
);
CREATE INDEX IF NOT EXISTS idx_snippets_created_at ON snippets (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_snippet_tags_tag_id ON snippet_tags (tag_id);
`
	_, err := r.pool.Exec(ctx, schema)
	if err != nil {
		return err
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

// Create inserts the snippet and links every tag in s.Tags inside one
// transaction. The tag upsert returns the existing id when the name is already
// present, so two snippets sharing a tag name share one tag row. Any failure
// rolls back the whole unit.
func (r *SnippetRepository) Create(ctx context.Context, s domain.Snippet) (domain.Snippet, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Snippet{}, fmt.Errorf("begin create: %w", err)
	}
	// Rollback is a no-op once the transaction committed.
	defer func() { _ = tx.Rollback(ctx) }()

	const insertSnippet = `
INSERT INTO snippets (title, code, language, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`
	created := s
	if err := tx.QueryRow(ctx, insertSnippet, s.Title, s.Code, s.Language, s.CreatedAt).
		Scan(&created.ID, &created.CreatedAt); err != nil {
		return domain.Snippet{}, translateErr("insert snippet", err)
	}

	// Upsert-returning-id resolves duplicate names atomically: the DO UPDATE
	// arm makes RETURNING yield the existing row's id instead of no row.
	const upsertTag = `
INSERT INTO tags (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = excluded.name
RETURNING id
`
	const linkTag = `
INSERT INTO snippet_tags (snippet_id, tag_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
	names := dedupe(s.Tags)
	for _, name := range names {
		var tagID int64
		if err := tx.QueryRow(ctx, upsertTag, name).Scan(&tagID); err != nil {
			return domain.Snippet{}, translateErr(fmt.Sprintf("upsert tag %q", name), err)
		}
		if _, err := tx.Exec(ctx, linkTag, created.ID, tagID); err != nil {
			return domain.Snippet{}, translateErr(fmt.Sprintf("link tag %q", name), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Snippet{}, fmt.Errorf("commit create: %w", err)
	}
	sort.Strings(names)
	created.Tags = names
	return created, nil
}

// List returns snippets newest first, each with its complete tag set. The
// aggregation groups by snippet so a snippet with several matching tags still
// appears once. An empty search returns everything.
func (r *SnippetRepository) List(ctx context.Context, search string) ([]domain.Snippet, error) {
	const base = `
SELECT s.id, s.title, s.code, s.language, s.created_at,
       COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}') AS tags
FROM snippets s
LEFT JOIN snippet_tags st ON st.snippet_id = s.id
LEFT JOIN tags t ON t.id = st.tag_id
`
	const tail = `
GROUP BY s.id
ORDER BY s.created_at DESC, s.id DESC
`
	var (
		rows pgx.Rows
		err  error
	)
	if search != "" {
		// Tag match is an OR branch: a snippet qualifies on any associated tag
		// even when title/code/language miss.
		const filter = `
WHERE s.title ILIKE $1
   OR s.code ILIKE $1
   OR s.language ILIKE $1
   OR EXISTS (
        SELECT 1
        FROM snippet_tags st2
        JOIN tags t2 ON t2.id = st2.tag_id
        WHERE st2.snippet_id = s.id AND t2.name ILIKE $1
   )
`
		pattern := "%" + escapeLike(search) + "%"
		rows, err = r.pool.Query(ctx, base+filter+tail, pattern)
	} else {
		rows, err = r.pool.Query(ctx, base+tail)
	}
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	defer rows.Close()

	res := make([]domain.Snippet, 0, 16)
	for rows.Next() {
		var s domain.Snippet
		if err := rows.Scan(&s.ID, &s.Title, &s.Code, &s.Language, &s.CreatedAt, &s.Tags); err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		res = append(res, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return res, nil
}

// Delete removes a snippet; the junction rows go with it via ON DELETE CASCADE.
func (r *SnippetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete snippet: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// dedupe collapses duplicate names so a repeated tag upserts once. Blank names
// pass through and fail the schema CHECK inside the transaction.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// escapeLike makes the search term a literal substring for ILIKE.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// translateErr maps Postgres constraint failures onto the repository taxonomy.
func translateErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23514", "23502":
			return fmt.Errorf("%s: %w", op, repository.ErrConstraint)
		case "23503":
			return fmt.Errorf("%s: %w", op, repository.ErrReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
