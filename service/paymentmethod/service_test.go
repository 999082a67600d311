package paymentmethod

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/seed"
)

type fakeRepo struct {
	methods map[string]model.PaymentMethod
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{methods: map[string]model.PaymentMethod{}}
}

func (r *fakeRepo) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeRepo) Insert(ctx context.Context, method model.PaymentMethod) error {
	r.methods[method.ID] = method
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, method model.PaymentMethod) error {
	r.methods[method.ID] = method
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.methods, id)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (model.PaymentMethod, error) {
	method, ok := r.methods[id]
	if !ok {
		return model.PaymentMethod{}, sql.ErrNoRows
	}
	return method, nil
}

func (r *fakeRepo) List(ctx context.Context, offset, limit int) ([]model.PaymentMethod, error) {
	res := make([]model.PaymentMethod, 0, len(r.methods))
	for _, method := range r.methods {
		res = append(res, method)
	}
	return res, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(r.methods), nil
}

func newService(repo IRepo) IService {
	return NewService(repo, seed.DefaultTable(), zap.NewNop().Sugar())
}

func seededMethod(repo *fakeRepo) model.PaymentMethod {
	method := model.PaymentMethod{
		Base:        model.Base{ID: uuid.NewString()},
		Name:        "COD",
		Description: "Thanh toán khi nhận hàng",
	}
	repo.methods[method.ID] = method
	return method
}

func Test_Create(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	method, err := s.Create(context.Background(), CreateInput{Name: "Momo", Description: "Ví điện tử"})
	assert.NoError(t, err)
	assert.Equal(t, "Momo", method.Name)
	assert.Len(t, repo.methods, 1)
}

func Test_Create_SeededPairRejected(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	_, err := s.Create(context.Background(), CreateInput{
		Name:        "COD",
		Description: "Thanh toán khi nhận hàng",
	})
	assert.True(t, apperr.IsConflict(err))
	assert.Empty(t, repo.methods)
}

func Test_Create_SeededNameWithOtherDescription(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	// the guard matches the exact pair, not the name alone
	method, err := s.Create(context.Background(), CreateInput{
		Name:        "COD",
		Description: "Khác",
	})
	assert.NoError(t, err)
	assert.Equal(t, "COD", method.Name)
}

func Test_UpdateByID_SeededRowProtected(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)
	method := seededMethod(repo)

	_, err := s.UpdateByID(context.Background(), method.ID, UpdateInput{Name: "Renamed"})
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "COD", repo.methods[method.ID].Name)
}

func Test_UpdateByID_RegularRow(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	method, err := s.Create(context.Background(), CreateInput{Name: "Momo", Description: "Ví điện tử"})
	assert.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), method.ID, UpdateInput{Description: "Ví Momo"})
	assert.NoError(t, err)
	assert.Equal(t, "Momo", updated.Name)
	assert.Equal(t, "Ví Momo", updated.Description)
}

func Test_DeleteByID_SeededRowProtected(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)
	method := seededMethod(repo)

	_, err := s.DeleteByID(context.Background(), method.ID)
	assert.True(t, apperr.IsConflict(err))
	assert.Len(t, repo.methods, 1)
}

func Test_GetByID_NotFound(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	_, err := s.GetByID(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "Payment method not found")
}
