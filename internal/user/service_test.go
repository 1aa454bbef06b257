package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byEmail      map[string]*User
	lastLoginErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*User{}}
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	u.ID = "33333333-3333-3333-3333-333333333333"
	u.CreatedAt = time.Now().UTC()
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepo) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error {
	return r.lastLoginErr
}

// plainHasher keeps tests fast; bcrypt is covered in the auth package.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "h:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Alice@Example.COM ", "correct horse", " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice", *u.DisplayName)
	assert.Equal(t, "h:correct horse", u.PasswordHash)
	assert.True(t, u.IsActive)

	_, err = svc.Register(ctx, "alice@example.com", "another pass", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	_, err = svc.Register(ctx, "  ", "correct horse", "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "bob@example.com", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "correct horse", "")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ALICE@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.byEmail["alice@example.com"].IsActive = false
	_, err = svc.Login(ctx, "alice@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestLoginIgnoresLastLoginFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.lastLoginErr = errors.New("db down")
	svc := NewService(repo, plainHasher{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "correct horse", "")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Nil(t, u.LastLoginAt)
}
