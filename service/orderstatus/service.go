package orderstatus

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/response"
	"github.com/minhtrifit/hubtech-interview-api/seed"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type CreateInput struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type UpdateInput struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type ListResult struct {
	OrderStatuses []model.OrderStatus `json:"order_status"`
	Total         int                 `json:"total"`
	Offset        int                 `json:"offset"`
	Limit         int                 `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.OrderStatus, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.OrderStatus, error)
	DeleteByID(ctx context.Context, id string) (model.OrderStatus, error)
	GetByID(ctx context.Context, id string) (model.OrderStatus, error)
	GetAll(ctx context.Context, offset, limit *int) (ListResult, error)
}

func NewService(repo IRepo, seeds seed.Table, logger *zap.SugaredLogger) IService {
	return &service{
		repo:   repo,
		seeds:  seeds,
		logger: logger,
	}
}

type service struct {
	repo   IRepo
	seeds  seed.Table
	logger *zap.SugaredLogger
}

func (s service) Create(ctx context.Context, input CreateInput) (model.OrderStatus, error) {
	// a proposed pair colliding with a seeded one is rejected even when no
	// matching row exists in storage
	if err := s.seeds.GuardStatusCreate(input.Name, input.Code); err != nil {
		return model.OrderStatus{}, err
	}

	now := time.Now()
	status := model.OrderStatus{
		Base: model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name: input.Name,
		Code: input.Code,
	}

	err := s.repo.Insert(ctx, status)
	if sqltx.IsDuplicateEntry(err) {
		return model.OrderStatus{}, apperr.New(apperr.Conflict, "Code is already exist")
	}
	if err != nil {
		return model.OrderStatus{}, err
	}

	s.logger.Infow("created order status", "id", status.ID, "code", status.Code)
	return status, nil
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.OrderStatus, error) {
	if err := validateID(id); err != nil {
		return model.OrderStatus{}, err
	}

	status, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.OrderStatus{}, apperr.MaskNoRows(err, "Order status not found")
	}

	// the guard runs on the existing row, so renaming a seeded status away
	// from its seeded pair is still blocked
	if err := s.seeds.GuardStatusUpdate(status.Name, status.Code); err != nil {
		return model.OrderStatus{}, err
	}

	if input.Name != "" {
		status.Name = input.Name
	}
	if input.Code != "" {
		status.Code = input.Code
	}
	status.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, status)
	if sqltx.IsDuplicateEntry(err) {
		return model.OrderStatus{}, apperr.New(apperr.Conflict, "Code is already exist")
	}
	if err != nil {
		return model.OrderStatus{}, err
	}
	return status, nil
}

func (s service) DeleteByID(ctx context.Context, id string) (model.OrderStatus, error) {
	if err := validateID(id); err != nil {
		return model.OrderStatus{}, err
	}

	status, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.OrderStatus{}, apperr.MaskNoRows(err, "Order status not found")
	}

	if err := s.seeds.GuardStatusDelete(status.Name, status.Code); err != nil {
		return model.OrderStatus{}, err
	}

	if err := s.repo.Delete(ctx, status.ID); err != nil {
		return model.OrderStatus{}, err
	}
	return status, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.OrderStatus, error) {
	if err := validateID(id); err != nil {
		return model.OrderStatus{}, err
	}

	status, err := s.repo.Get(ctx, id)
	return status, apperr.MaskNoRows(err, "Order status not found")
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	statuses, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		OrderStatuses: statuses,
		Total:         total,
		Offset:        skip,
		Limit:         take,
	}, nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperr.New(apperr.BadRequest, "Not valid id type")
	}
	return nil
}
