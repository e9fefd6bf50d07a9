package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPostgres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus int
	}{
		{
			name:       "no rows maps to not found",
			err:        pgx.ErrNoRows,
			wantKind:   KindNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped no rows maps to not found",
			err:        fmt.Errorf("find author: %w", pgx.ErrNoRows),
			wantKind:   KindNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unique violation maps to conflict",
			err:        &pgconn.PgError{Code: "23505", Message: "duplicate key value"},
			wantKind:   KindConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "foreign key violation maps to conflict",
			err:        &pgconn.PgError{Code: "23503", Message: "violates foreign key"},
			wantKind:   KindConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "not null violation maps to validation",
			err:        &pgconn.PgError{Code: "23502"},
			wantKind:   KindValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "string too long maps to validation",
			err:        &pgconn.PgError{Code: "22001"},
			wantKind:   KindValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unmapped pg error degrades to internal",
			err:        &pgconn.PgError{Code: "57014", Message: "canceling statement"},
			wantKind:   KindInternal,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "arbitrary error degrades to internal",
			err:        errors.New("connection refused"),
			wantKind:   KindInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromPostgres(tt.err)

			var appErr *Error
			require.ErrorAs(t, got, &appErr)
			assert.Equal(t, tt.wantKind, appErr.Kind)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus())
		})
	}
}

func TestFromPostgresNeverLeaksDriverText(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "57014", Message: "canceling statement due to user request"}
	got := FromPostgres(pgErr)

	var appErr *Error
	require.ErrorAs(t, got, &appErr)
	assert.NotContains(t, appErr.Message, "canceling statement")
	// The original error stays reachable for logging.
	assert.ErrorIs(t, appErr, pgErr)
}

func TestFromPostgresPassesTypedErrorsThrough(t *testing.T) {
	t.Parallel()

	sentinel := NotFound("author not found")
	got := FromPostgres(fmt.Errorf("lookup: %w", sentinel))

	var appErr *Error
	require.ErrorAs(t, got, &appErr)
	assert.Equal(t, sentinel, appErr)
}

func TestFromPostgresNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, FromPostgres(nil))
}
