package supplier

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
	Suppliers []model.Supplier `json:"suppliers"`
	Total     int              `json:"total"`
	Offset    int              `json:"offset"`
	Limit     int              `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.Supplier, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Supplier, error)
	DeleteByID(ctx context.Context, id string) (model.Supplier, error)
	GetByID(ctx context.Context, id string) (model.Supplier, error)
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

func (s service) Create(ctx context.Context, input CreateInput) (model.Supplier, error) {
	now := time.Now()
	sup := model.Supplier{
		Base:  model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}

	// the pair check and the insert share one transaction so a concurrent
	// create cannot slip between them
	err := s.repo.Transact(ctx, func(ctx context.Context) error {
		_, err := s.repo.FindByEmailOrPhone(ctx, input.Email, input.Phone)
		if err == nil {
			return apperr.New(apperr.Conflict, "Email or phone is already exist")
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return s.repo.Insert(ctx, sup)
	})
	if err != nil {
		return model.Supplier{}, err
	}

	s.logger.Infow("created supplier", "id", sup.ID)
	return sup, nil
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Supplier, error) {
	if err := validateID(id); err != nil {
		return model.Supplier{}, err
	}

	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Supplier{}, apperr.MaskNoRows(err, "Supplier not found")
	}

	if input.Name != "" {
		sup.Name = input.Name
	}
	if input.Email != "" {
		sup.Email = input.Email
	}
	if input.Phone != "" {
		sup.Phone = input.Phone
	}
	sup.UpdatedAt = time.Now()

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByEmailOrPhone(ctx, sup.Email, sup.Phone)
		if err == nil && existing.ID != sup.ID {
			return apperr.New(apperr.Conflict, "Email or phone is already exist")
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return s.repo.Update(ctx, sup)
	})
	if err != nil {
		return model.Supplier{}, err
	}
	return sup, nil
}

func (s service) DeleteByID(ctx context.Context, id string) (model.Supplier, error) {
	if err := validateID(id); err != nil {
		return model.Supplier{}, err
	}

	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Supplier{}, apperr.MaskNoRows(err, "Supplier not found")
	}

	if err := s.repo.Delete(ctx, sup.ID); err != nil {
		return model.Supplier{}, err
	}
	return sup, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.Supplier, error) {
	if err := validateID(id); err != nil {
		return model.Supplier{}, err
	}

	sup, err := s.repo.Get(ctx, id)
	return sup, apperr.MaskNoRows(err, "Supplier not found")
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	suppliers, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Suppliers: suppliers,
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
