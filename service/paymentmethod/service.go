package paymentmethod

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
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListResult struct {
	PaymentMethods []model.PaymentMethod `json:"payment_methods"`
	Total          int                   `json:"total"`
	Offset         int                   `json:"offset"`
	Limit          int                   `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.PaymentMethod, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.PaymentMethod, error)
	DeleteByID(ctx context.Context, id string) (model.PaymentMethod, error)
	GetByID(ctx context.Context, id string) (model.PaymentMethod, error)
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

func (s service) Create(ctx context.Context, input CreateInput) (model.PaymentMethod, error) {
	if err := s.seeds.GuardMethodCreate(input.Name, input.Description); err != nil {
		return model.PaymentMethod{}, err
	}

	now := time.Now()
	method := model.PaymentMethod{
		Base:        model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Description: input.Description,
	}

	err := s.repo.Insert(ctx, method)
	if sqltx.IsDuplicateEntry(err) {
		return model.PaymentMethod{}, apperr.New(apperr.Conflict, "Payment method is already exist")
	}
	if err != nil {
		return model.PaymentMethod{}, err
	}

	s.logger.Infow("created payment method", "id", method.ID, "name", method.Name)
	return method, nil
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.PaymentMethod, error) {
	if err := validateID(id); err != nil {
		return model.PaymentMethod{}, err
	}

	method, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.PaymentMethod{}, apperr.MaskNoRows(err, "Payment method not found")
	}

	if err := s.seeds.GuardMethodUpdate(method.Name, method.Description); err != nil {
		return model.PaymentMethod{}, err
	}

	if input.Name != "" {
		method.Name = input.Name
	}
	if input.Description != "" {
		method.Description = input.Description
	}
	method.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, method)
	if sqltx.IsDuplicateEntry(err) {
		return model.PaymentMethod{}, apperr.New(apperr.Conflict, "Payment method is already exist")
	}
	if err != nil {
		return model.PaymentMethod{}, err
	}
	return method, nil
}

func (s service) DeleteByID(ctx context.Context, id string) (model.PaymentMethod, error) {
	if err := validateID(id); err != nil {
		return model.PaymentMethod{}, err
	}

	method, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.PaymentMethod{}, apperr.MaskNoRows(err, "Payment method not found")
	}

	if err := s.seeds.GuardMethodDelete(method.Name, method.Description); err != nil {
		return model.PaymentMethod{}, err
	}

	if err := s.repo.Delete(ctx, method.ID); err != nil {
		return model.PaymentMethod{}, err
	}
	return method, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.PaymentMethod, error) {
	if err := validateID(id); err != nil {
		return model.PaymentMethod{}, err
	}

	method, err := s.repo.Get(ctx, id)
	return method, apperr.MaskNoRows(err, "Payment method not found")
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	methods, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		PaymentMethods: methods,
		Total:          total,
		Offset:         skip,
		Limit:          take,
	}, nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperr.New(apperr.BadRequest, "Not valid id type")
	}
	return nil
}
