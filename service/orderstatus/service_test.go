package orderstatus

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
	statuses map[string]model.OrderStatus
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{statuses: map[string]model.OrderStatus{}}
}

func (r *fakeRepo) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeRepo) Insert(ctx context.Context, status model.OrderStatus) error {
	r.statuses[status.ID] = status
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, status model.OrderStatus) error {
	r.statuses[status.ID] = status
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.statuses, id)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (model.OrderStatus, error) {
	status, ok := r.statuses[id]
	if !ok {
		return model.OrderStatus{}, sql.ErrNoRows
	}
	return status, nil
}

func (r *fakeRepo) List(ctx context.Context, offset, limit int) ([]model.OrderStatus, error) {
	res := make([]model.OrderStatus, 0, len(r.statuses))
	for _, status := range r.statuses {
		res = append(res, status)
	}
	return res, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(r.statuses), nil
}

func newService(repo IRepo) IService {
	return NewService(repo, seed.DefaultTable(), zap.NewNop().Sugar())
}

func seededStatus(repo *fakeRepo) model.OrderStatus {
	status := model.OrderStatus{
		Base: model.Base{ID: uuid.NewString()},
		Name: "Nhận đơn",
		Code: "pending",
	}
	repo.statuses[status.ID] = status
	return status
}

func Test_Create(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	status, err := s.Create(context.Background(), CreateInput{Name: "Đã hủy", Code: "cancelled"})
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", status.Code)
	assert.NotEmpty(t, status.ID)
	assert.Len(t, repo.statuses, 1)
}

func Test_Create_SeededPairRejected(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	// rejected even though storage holds no such row
	_, err := s.Create(context.Background(), CreateInput{Name: "Nhận đơn", Code: "pending"})
	assert.True(t, apperr.IsConflict(err))
	assert.Empty(t, repo.statuses)
}

func Test_UpdateByID_SeededRowProtected(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)
	status := seededStatus(repo)

	// any payload is rejected: the guard runs on the stored row
	_, err := s.UpdateByID(context.Background(), status.ID, UpdateInput{Name: "Renamed"})
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "Nhận đơn", repo.statuses[status.ID].Name)
}

func Test_UpdateByID_RegularRow(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	status, err := s.Create(context.Background(), CreateInput{Name: "Đã hủy", Code: "cancelled"})
	assert.NoError(t, err)

	updated, err := s.UpdateByID(context.Background(), status.ID, UpdateInput{Name: "Hủy đơn"})
	assert.NoError(t, err)
	assert.Equal(t, "Hủy đơn", updated.Name)
	// absent code keeps the stored one
	assert.Equal(t, "cancelled", updated.Code)
}

func Test_DeleteByID_SeededRowProtected(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)
	status := seededStatus(repo)

	_, err := s.DeleteByID(context.Background(), status.ID)
	assert.True(t, apperr.IsConflict(err))
	assert.Len(t, repo.statuses, 1)
}

func Test_DeleteByID_RegularRow(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	status, err := s.Create(context.Background(), CreateInput{Name: "Đã hủy", Code: "cancelled"})
	assert.NoError(t, err)

	deleted, err := s.DeleteByID(context.Background(), status.ID)
	assert.NoError(t, err)
	assert.Equal(t, status.ID, deleted.ID)
	assert.Empty(t, repo.statuses)
}

func Test_GetByID(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo)

	_, err := s.GetByID(context.Background(), "bogus")
	assert.True(t, apperr.IsBadRequest(err))
	assert.EqualError(t, err, "Not valid id type")

	_, err = s.GetByID(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "Order status not found")
}
