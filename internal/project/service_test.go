package project

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items map[string]*Project
	seq   int
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]*Project{}}
}

func (r *memRepo) Create(_ context.Context, p *Project) error {
	r.seq++
	p.ID = fmt.Sprintf("p%d", r.seq)
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Project, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, filter Filter) ([]*Project, int, error) {
	var out []*Project
	for _, p := range r.items {
		if p.UserID == filter.UserID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, p *Project) error {
	if _, ok := r.items[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateValidates(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{UserID: "u1", Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, CreateRequest{UserID: "u1", Name: "Thesis", Color: strPtr("red")})
	assert.ErrorIs(t, err, ErrInvalidColor)

	p, err := svc.Create(ctx, CreateRequest{UserID: "u1", Name: " Thesis ", Color: strPtr("#3B82F6")})
	require.NoError(t, err)
	assert.Equal(t, "Thesis", p.Name)
	assert.Equal(t, "#3B82F6", *p.Color)
}

func TestOwnershipIsEnforced(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateRequest{UserID: "u1", Name: "Reading"})
	require.NoError(t, err)

	_, err = svc.GetOwned(ctx, p.ID, "u2")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Update(ctx, p.ID, "u2", UpdateRequest{Name: strPtr("Mine now")})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID, "u2"), ErrPermissionDenied)
	assert.NoError(t, svc.Delete(ctx, p.ID, "u1"))

	_, err = svc.GetOwned(ctx, p.ID, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClearsColor(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateRequest{UserID: "u1", Name: "Gym", Color: strPtr("#10b981")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, "u1", UpdateRequest{Color: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Color)
	assert.Equal(t, "Gym", updated.Name)
}
