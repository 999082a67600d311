package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/response"
)

type CreateInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

type UpdateInput struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
}

type ListResult struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Offset   int             `json:"offset"`
	Limit    int             `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.Product, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Product, error)
	DeleteByID(ctx context.Context, id string) (model.Product, error)
	GetByID(ctx context.Context, id string) (model.Product, error)
	GetAll(ctx context.Context, offset, limit *int) (ListResult, error)
}

func NewService(repo IRepo, logger *zap.SugaredLogger) IService {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

type service struct {
	repo   IRepo
	logger *zap.SugaredLogger
}

func (s service) Create(ctx context.Context, input CreateInput) (model.Product, error) {
	now := time.Now()
	p := model.Product{
		Base:        model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return model.Product{}, err
	}

	s.logger.Infow("created product", "id", p.ID, "name", p.Name)
	return p, nil
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Product, error) {
	if err := validateID(id); err != nil {
		return model.Product{}, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Product{}, apperr.MaskNoRows(err, "Product not found")
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s service) DeleteByID(ctx context.Context, id string) (model.Product, error) {
	if err := validateID(id); err != nil {
		return model.Product{}, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Product{}, apperr.MaskNoRows(err, "Product not found")
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.Product, error) {
	if err := validateID(id); err != nil {
		return model.Product{}, err
	}

	p, err := s.repo.Get(ctx, id)
	return p, apperr.MaskNoRows(err, "Product not found")
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	products, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Products: products,
		Total:    total,
		Offset:   skip,
		Limit:    take,
	}, nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperr.New(apperr.BadRequest, "Not valid id type")
	}
	return nil
}
