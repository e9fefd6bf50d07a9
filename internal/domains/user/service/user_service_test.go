package service

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"catalog-backend/internal/domains/user"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/token"
)

// memoryRepo is an in-memory user.Repository for service tests.
type memoryRepo struct {
	nextID int64
	users  map[int64]*user.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, users: make(map[int64]*user.User)}
}

func (m *memoryRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, user.ErrEmailTaken
		}
	}
	stored := *u
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.users[stored.ID] = &stored
	m.nextID++
	return &stored, nil
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memoryRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryRepo) List(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

// brokenRepo fails every call, standing in for an unreachable database.
type brokenRepo struct {
	err error
}

func (b brokenRepo) Create(context.Context, *user.User) (*user.User, error) { return nil, b.err }
func (b brokenRepo) FindByEmail(context.Context, string) (*user.User, error) {
	return nil, b.err
}
func (b brokenRepo) FindByID(context.Context, int64) (*user.User, error) { return nil, b.err }
func (b brokenRepo) List(context.Context) ([]user.User, error)           { return nil, b.err }

func newTestService(t *testing.T) (user.Service, *memoryRepo, *token.Manager) {
	t.Helper()
	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)
	repo := newMemoryRepo()
	return NewUserService(repo, tokens), repo, tokens
}

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores a bcrypt digest, never the plaintext", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newTestService(t)

		resp, err := svc.Register(ctx, &user.RegisterRequest{Email: "nal@email.com", Password: "nalldev"})
		require.NoError(t, err)

		assert.Equal(t, "nal@email.com", resp.Email)
		assert.Equal(t, user.RoleUser, resp.Role)
		assert.NotEqual(t, "nalldev", resp.Password)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.Password), []byte("nalldev")))

		stored := repo.users[resp.ID]
		assert.NotContains(t, stored.PasswordHash, "nalldev")
	})

	t.Run("rejects a malformed email per field", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		_, err := svc.Register(ctx, &user.RegisterRequest{Email: "bad", Password: "nalldev"})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "email")
	})

	t.Run("rejects a short password per field", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		_, err := svc.Register(ctx, &user.RegisterRequest{Email: "a@b.com", Password: "ab"})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		require.Contains(t, verrs, "password")
		assert.Contains(t, verrs["password"].Error(), "min 6")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		_, err := svc.Register(ctx, &user.RegisterRequest{Email: "dup@email.com", Password: "nalldev"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &user.RegisterRequest{Email: "dup@email.com", Password: "nalldev"})
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("email is normalized to lower case", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		resp, err := svc.Register(ctx, &user.RegisterRequest{Email: "Mixed@Email.COM", Password: "nalldev"})
		require.NoError(t, err)
		assert.Equal(t, "mixed@email.com", resp.Email)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		t.Parallel()
		svc, _, tokens := newTestService(t)

		registered, err := svc.Register(ctx, &user.RegisterRequest{Email: "nal@email.com", Password: "nalldev"})
		require.NoError(t, err)

		resp, err := svc.Login(ctx, &user.LoginRequest{Email: "nal@email.com", Password: "nalldev"})
		require.NoError(t, err)
		assert.Equal(t, "nal@email.com", resp.Email)

		claims, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
		assert.Equal(t, user.RoleUser, claims.Role)
	})

	t.Run("storage failure is not an auth failure", func(t *testing.T) {
		t.Parallel()
		tokens, err := token.NewManager("test-secret", time.Hour)
		require.NoError(t, err)

		storageErr := apperror.Internal("internal server error", errors.New("connection refused"))
		svc := NewUserService(brokenRepo{err: storageErr}, tokens)

		_, err = svc.Login(ctx, &user.LoginRequest{Email: "nal@email.com", Password: "nalldev"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, user.ErrInvalidCredentials)

		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindInternal, appErr.Kind)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		_, err := svc.Register(ctx, &user.RegisterRequest{Email: "nal@email.com", Password: "nalldev"})
		require.NoError(t, err)

		_, unknownErr := svc.Login(ctx, &user.LoginRequest{Email: "nobody@email.com", Password: "nalldev"})
		_, wrongErr := svc.Login(ctx, &user.LoginRequest{Email: "nal@email.com", Password: "wrongpass"})

		assert.ErrorIs(t, unknownErr, user.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, user.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newTestService(t)

	registered, err := svc.Register(ctx, &user.RegisterRequest{Email: "nal@email.com", Password: "nalldev"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, me.ID)
	assert.Equal(t, user.RoleUser, me.Role)

	_, err = svc.Me(ctx, 999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestListOmitsPasswordDigests(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Register(ctx, &user.RegisterRequest{Email: "a@email.com", Password: "nalldev"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, &user.RegisterRequest{Email: "b@email.com", Password: "nalldev"})
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
