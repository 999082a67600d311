package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/event"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/outbox"
	"github.com/minhtrifit/hubtech-interview-api/response"
)

type Resolver interface {
	Order(ctx context.Context, id string) (model.Order, error)
	PaymentMethod(ctx context.Context, id string) (model.PaymentMethod, error)
}

type CreateInput struct {
	OrderID  string          `json:"orderId"`
	MethodID string          `json:"methodId"`
	Amount   decimal.Decimal `json:"amount"`
	IsPaid   bool            `json:"isPaid"`
}

type UpdateInput struct {
	OrderID  string           `json:"orderId"`
	MethodID string           `json:"methodId"`
	Amount   *decimal.Decimal `json:"amount"`
	IsPaid   *bool            `json:"isPaid"`
}

type ListResult struct {
	Payments []model.Payment `json:"payments"`
	Total    int             `json:"total"`
	Offset   int             `json:"offset"`
	Limit    int             `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.Payment, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Payment, error)
	DeleteByID(ctx context.Context, id string) (model.Payment, error)
	GetByID(ctx context.Context, id string) (model.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (model.Payment, error)
	GetAll(ctx context.Context, offset, limit *int) (ListResult, error)
}

func NewService(repo IRepo, resolver Resolver, outboxStore outbox.IStore, logger *zap.SugaredLogger) IService {
	return &service{
		repo:     repo,
		resolver: resolver,
		outbox:   outboxStore,
		logger:   logger,
	}
}

type service struct {
	repo     IRepo
	resolver Resolver
	outbox   outbox.IStore
	logger   *zap.SugaredLogger
}

func (s service) Create(ctx context.Context, input CreateInput) (model.Payment, error) {
	ord, err := s.resolver.Order(ctx, input.OrderID)
	if err != nil {
		return model.Payment{}, err
	}

	// a second payment for the same order is a business-rule violation, not a
	// missing resource
	_, err = s.repo.GetByOrder(ctx, ord.ID)
	if err == nil {
		return model.Payment{}, apperr.New(apperr.BadRequest, "Order payment is already exist")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, err
	}

	if _, err := s.resolver.PaymentMethod(ctx, input.MethodID); err != nil {
		return model.Payment{}, err
	}

	now := time.Now()
	p := model.Payment{
		Base:     model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		OrderID:  ord.ID,
		MethodID: input.MethodID,
		Amount:   input.Amount,
		IsPaid:   input.IsPaid,
	}

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, p); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregatePayment,
			Op:          event.OpCreated,
			AggregateID: p.ID,
		})
	})
	if err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("created payment", "id", p.ID, "order", p.OrderID)
	return s.GetByID(ctx, p.ID)
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Payment, error) {
	if err := validateID(id); err != nil {
		return model.Payment{}, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Payment{}, apperr.MaskNoRows(err, "Payment not found")
	}

	if input.OrderID != "" {
		ord, err := s.resolver.Order(ctx, input.OrderID)
		if err != nil {
			return model.Payment{}, err
		}

		// moving to another order is allowed only when that order has no
		// payment of its own yet
		existing, err := s.repo.GetByOrder(ctx, ord.ID)
		if err == nil && existing.ID != p.ID {
			return model.Payment{}, apperr.New(apperr.BadRequest, "Order payment is already exist")
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return model.Payment{}, err
		}
		p.OrderID = ord.ID
	}

	if input.MethodID != "" {
		if _, err := s.resolver.PaymentMethod(ctx, input.MethodID); err != nil {
			return model.Payment{}, err
		}
		p.MethodID = input.MethodID
	}

	if input.Amount != nil {
		p.Amount = *input.Amount
	}
	if input.IsPaid != nil {
		p.IsPaid = *input.IsPaid
	}

	p.UpdatedAt = time.Now()

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregatePayment,
			Op:          event.OpUpdated,
			AggregateID: p.ID,
		})
	})
	if err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("updated payment", "id", p.ID)
	return s.GetByID(ctx, id)
}

func (s service) DeleteByID(ctx context.Context, id string) (model.Payment, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Payment{}, err
	}

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, p.ID); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregatePayment,
			Op:          event.OpDeleted,
			AggregateID: p.ID,
		})
	})
	if err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("deleted payment", "id", p.ID)
	return p, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.Payment, error) {
	if err := validateID(id); err != nil {
		return model.Payment{}, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Payment{}, apperr.MaskNoRows(err, "Payment not found")
	}

	if err := s.attach(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (s service) GetByOrderID(ctx context.Context, orderID string) (model.Payment, error) {
	if err := validateID(orderID); err != nil {
		return model.Payment{}, err
	}

	p, err := s.repo.GetByOrder(ctx, orderID)
	if err != nil {
		return model.Payment{}, apperr.MaskNoRows(err, "Payment not found")
	}

	if err := s.attach(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	payments, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	for i := range payments {
		if err := s.attach(ctx, &payments[i]); err != nil {
			return ListResult{}, err
		}
	}

	return ListResult{
		Payments: payments,
		Total:    total,
		Offset:   skip,
		Limit:    take,
	}, nil
}

func (s service) attach(ctx context.Context, p *model.Payment) error {
	ord, err := s.resolver.Order(ctx, p.OrderID)
	if err != nil {
		return err
	}
	p.Order = &ord

	method, err := s.resolver.PaymentMethod(ctx, p.MethodID)
	if err != nil {
		return err
	}
	p.Method = &method
	return nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperr.New(apperr.BadRequest, "Not valid id type")
	}
	return nil
}
