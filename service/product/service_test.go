package product

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/model"
)

type fakeRepo struct {
	products map[string]model.Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]model.Product{}}
}

func (r *fakeRepo) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeRepo) Insert(ctx context.Context, product model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, product model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, sql.ErrNoRows
	}
	return p, nil
}

func (r *fakeRepo) List(ctx context.Context, offset, limit int) ([]model.Product, error) {
	res := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		res = append(res, p)
	}
	return res, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(r.products), nil
}

func Test_Create(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop().Sugar())

	p, err := s.Create(context.Background(), CreateInput{
		Name:        "Widget",
		Price:       decimal.RequireFromString("10.50"),
		Description: "A widget",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("10.50")))
	assert.Len(t, repo.products, 1)
}

func Test_UpdateByID_AbsentPriceKept(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop().Sugar())

	p, err := s.Create(context.Background(), CreateInput{
		Name:  "Widget",
		Price: decimal.RequireFromString("10.50"),
	})
	assert.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), p.ID, UpdateInput{Name: "Widget v2"})
	assert.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	// nil price means keep, including a stored zero
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("10.50")))
}

func Test_UpdateByID_ZeroPriceApplied(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop().Sugar())

	p, err := s.Create(context.Background(), CreateInput{
		Name:  "Widget",
		Price: decimal.RequireFromString("10.50"),
	})
	assert.NoError(t, err)

	zero := decimal.Zero
	updated, err := s.UpdateByID(context.Background(), p.ID, UpdateInput{Price: &zero})
	assert.NoError(t, err)
	assert.True(t, updated.Price.IsZero())
}

func Test_DeleteByID(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop().Sugar())

	p, err := s.Create(context.Background(), CreateInput{Name: "Widget"})
	assert.NoError(t, err)

	deleted, err := s.DeleteByID(context.Background(), p.ID)
	assert.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)
	assert.Empty(t, repo.products)
}

func Test_GetByID_NotFound(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop().Sugar())

	_, err := s.GetByID(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "Product not found")
}
