package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/author"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/cache"
)

const cacheTTL = 15 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
		INSERT INTO authors (name, slug, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, name, slug, created_at, updated_at
	`

	var created author.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Slug).Scan(
		&created.ID,
		&created.Name,
		&created.Slug,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, author.ErrDuplicateSlug
		}
		return nil, apperror.FromPostgres(err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	cacheKey := fmt.Sprintf("author:id:%d", id)

	var cached author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Slug,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperror.FromPostgres(fmt.Errorf("find author by id: %w", err))
	}

	// Cache failures never fail the request.
	_ = r.cache.Set(ctx, cacheKey, &a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*author.Author, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM authors
		WHERE slug = $1
	`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&a.ID,
		&a.Name,
		&a.Slug,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperror.FromPostgres(fmt.Errorf("find author by slug: %w", err))
	}

	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, filter author.Filter) ([]author.Author, int64, error) {
	// SortBy and Order are whitelisted by the service before they reach
	// this query.
	query := fmt.Sprintf(`
		SELECT id, name, slug, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM authors
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
		ORDER BY %s %s
		LIMIT $2 OFFSET $3
	`, filter.SortBy, filter.Order)

	rows, err := r.pool.Query(ctx, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, apperror.FromPostgres(fmt.Errorf("list authors: %w", err))
	}
	defer rows.Close()

	var (
		authors []author.Author
		total   int64
	)
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &a.CreatedAt, &a.UpdatedAt, &total); err != nil {
			return nil, 0, apperror.FromPostgres(fmt.Errorf("scan author row: %w", err))
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.FromPostgres(fmt.Errorf("iterate author rows: %w", err))
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
		UPDATE authors
		SET name = $2, slug = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, slug, created_at, updated_at
	`

	var updated author.Author
	err := r.pool.QueryRow(ctx, query, a.ID, a.Name, a.Slug).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Slug,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, author.ErrDuplicateSlug
		}
		return nil, apperror.FromPostgres(fmt.Errorf("update author: %w", err))
	}

	_ = r.cache.Delete(ctx, fmt.Sprintf("author:id:%d", a.ID))

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return apperror.FromPostgres(fmt.Errorf("delete author: %w", err))
	}
	if result.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	_ = r.cache.Delete(ctx, fmt.Sprintf("author:id:%d", id))

	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM authors WHERE slug = $1 AND ($2 = 0 OR id <> $2)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, apperror.FromPostgres(fmt.Errorf("check author slug: %w", err))
	}
	return exists, nil
}

func (r *postgresRepository) BookTitlesFor(ctx context.Context, authorIDs []int64) (map[int64][]string, error) {
	titles := make(map[int64][]string, len(authorIDs))
	if len(authorIDs) == 0 {
		return titles, nil
	}

	query := `
		SELECT author_id, title
		FROM books
		WHERE author_id = ANY($1)
		ORDER BY author_id, title
	`

	rows, err := r.pool.Query(ctx, query, authorIDs)
	if err != nil {
		return nil, apperror.FromPostgres(fmt.Errorf("list book titles by author: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			authorID int64
			title    string
		)
		if err := rows.Scan(&authorID, &title); err != nil {
			return nil, apperror.FromPostgres(fmt.Errorf("scan grouped book title: %w", err))
		}
		titles[authorID] = append(titles[authorID], title)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.FromPostgres(fmt.Errorf("iterate grouped book titles: %w", err))
	}

	return titles, nil
}

func (r *postgresRepository) BookTitles(ctx context.Context, authorID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT title FROM books WHERE author_id = $1 ORDER BY title`, authorID)
	if err != nil {
		return nil, apperror.FromPostgres(fmt.Errorf("list author book titles: %w", err))
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, apperror.FromPostgres(fmt.Errorf("scan book title: %w", err))
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.FromPostgres(fmt.Errorf("iterate book titles: %w", err))
	}

	return titles, nil
}
