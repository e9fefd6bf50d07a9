package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/book"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/cache"
)

const cacheTTL = 15 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const selectColumns = `
	b.id, b.title, b.slug, b.author_id, b.created_at, b.updated_at, a.name AS author_name
`

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
		INSERT INTO books (title, slug, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, b.Title, b.Slug, b.AuthorID).Scan(&id)
	if err != nil {
		return nil, r.translateWriteError(err)
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	cacheKey := fmt.Sprintf("book:id:%d", id)

	var cached book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1
	`, selectColumns)

	b, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperror.FromPostgres(fmt.Errorf("find book by id: %w", err))
	}

	// Cache failures never fail the request.
	_ = r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return b, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*book.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE b.slug = $1
	`, selectColumns)

	b, err := r.scanOne(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperror.FromPostgres(fmt.Errorf("find book by slug: %w", err))
	}

	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter book.Filter) ([]book.Book, int64, error) {
	// SortBy and Order are whitelisted by the service before they reach
	// this query.
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE ($1 = '' OR b.title ILIKE '%%' || $1 || '%%')
		  AND ($2 = 0 OR b.author_id = $2)
		ORDER BY b.%s %s
		LIMIT $3 OFFSET $4
	`, selectColumns, filter.SortBy, filter.Order)

	rows, err := r.pool.Query(ctx, query, filter.Search, filter.AuthorID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, apperror.FromPostgres(fmt.Errorf("list books: %w", err))
	}
	defer rows.Close()

	var (
		books []book.Book
		total int64
	)
	for rows.Next() {
		var b book.Book
		err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt, &b.AuthorName, &total)
		if err != nil {
			return nil, 0, apperror.FromPostgres(fmt.Errorf("scan book row: %w", err))
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.FromPostgres(fmt.Errorf("iterate book rows: %w", err))
	}

	return books, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
		UPDATE books
		SET title = $2, slug = $3, author_id = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, b.ID, b.Title, b.Slug, b.AuthorID)
	if err != nil {
		return nil, r.translateWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return nil, book.ErrBookNotFound
	}

	_ = r.cache.Delete(ctx, fmt.Sprintf("book:id:%d", b.ID))

	return r.GetByID(ctx, b.ID)
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return apperror.FromPostgres(fmt.Errorf("delete book: %w", err))
	}
	if result.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	_ = r.cache.Delete(ctx, fmt.Sprintf("book:id:%d", id))

	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM books WHERE slug = $1 AND ($2 = 0 OR id <> $2)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, apperror.FromPostgres(fmt.Errorf("check book slug: %w", err))
	}
	return exists, nil
}

func (r *postgresRepository) scanOne(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt, &b.AuthorName)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return book.ErrDuplicateSlug
		case "23503":
			return book.ErrUnknownAuthor
		}
	}
	return apperror.FromPostgres(err)
}
