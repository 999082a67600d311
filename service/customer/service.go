package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/response"
)

type CreateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ListResult struct {
	Customers []model.Customer `json:"customers"`
	Total     int              `json:"total"`
	Offset    int              `json:"offset"`
	Limit     int              `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.Customer, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Customer, error)
	DeleteByID(ctx context.Context, id string) (model.Customer, error)
	GetByID(ctx context.Context, id string) (model.Customer, error)
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

func (s service) Create(ctx context.Context, input CreateInput) (model.Customer, error) {
	now := time.Now()
	cus := model.Customer{
		Base:  model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}

	err := s.repo.Transact(ctx, func(ctx context.Context) error {
		_, err := s.repo.FindByEmailOrPhone(ctx, input.Email, input.Phone)
		if err == nil {
			return apperr.New(apperr.Conflict, "Email or phone is already exist")
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return s.repo.Insert(ctx, cus)
	})
	if err != nil {
		return model.Customer{}, err
	}

	s.logger.Infow("created customer", "id", cus.ID)
	return cus, nil
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Customer, error) {
	if err := validateID(id); err != nil {
		return model.Customer{}, err
	}

	cus, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Customer{}, apperr.MaskNoRows(err, "Customer not found")
	}

	if input.Name != "" {
		cus.Name = input.Name
	}
	if input.Email != "" {
		cus.Email = input.Email
	}
	if input.Phone != "" {
		cus.Phone = input.Phone
	}
	cus.UpdatedAt = time.Now()

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByEmailOrPhone(ctx, cus.Email, cus.Phone)
		if err == nil && existing.ID != cus.ID {
			return apperr.New(apperr.Conflict, "Email or phone is already exist")
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return s.repo.Update(ctx, cus)
	})
	if err != nil {
		return model.Customer{}, err
	}
	return cus, nil
}

func (s service) DeleteByID(ctx context.Context, id string) (model.Customer, error) {
	if err := validateID(id); err != nil {
		return model.Customer{}, err
	}

	cus, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Customer{}, apperr.MaskNoRows(err, "Customer not found")
	}

	if err := s.repo.Delete(ctx, cus.ID); err != nil {
		return model.Customer{}, err
	}
	return cus, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.Customer, error) {
	if err := validateID(id); err != nil {
		return model.Customer{}, err
	}

	cus, err := s.repo.Get(ctx, id)
	return cus, apperr.MaskNoRows(err, "Customer not found")
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	customers, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Customers: customers,
		Total:     total,
		Offset:    skip,
		Limit:     take,
	}, nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperr.New(apperr.BadRequest, "Not valid id type")
	}
	return nil
}
