package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/event"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/outbox"
	"github.com/minhtrifit/hubtech-interview-api/pricing"
	"github.com/minhtrifit/hubtech-interview-api/response"
)

// Resolver covers the foreign-key lookups an order mutation needs. All
// references are resolved before anything is written.
type Resolver interface {
	Supplier(ctx context.Context, id string) (model.Supplier, error)
	Customer(ctx context.Context, id string) (model.Customer, error)
	OrderStatus(ctx context.Context, id string) (model.OrderStatus, error)
	ProductBatch(ctx context.Context, ids []string) (map[string]model.Product, error)
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateInput struct {
	SupplierID string      `json:"supplierId"`
	CustomerID string      `json:"customerId"`
	StatusID   string      `json:"statusId"`
	Address    string      `json:"address"`
	Items      []ItemInput `json:"items"`
}

// UpdateInput is a partial update: empty ids and an empty address leave the
// current values, and an empty item list leaves the current items and total.
type UpdateInput struct {
	SupplierID string      `json:"supplierId"`
	CustomerID string      `json:"customerId"`
	StatusID   string      `json:"statusId"`
	Address    string      `json:"address"`
	Items      []ItemInput `json:"items"`
}

type ListResult struct {
	Orders []model.Order `json:"orders"`
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.Order, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Order, error)
	DeleteByID(ctx context.Context, id string) (model.Order, error)
	GetByID(ctx context.Context, id string) (model.Order, error)
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

func (s service) Create(ctx context.Context, input CreateInput) (model.Order, error) {
	if _, err := s.resolver.Supplier(ctx, input.SupplierID); err != nil {
		return model.Order{}, err
	}
	if _, err := s.resolver.Customer(ctx, input.CustomerID); err != nil {
		return model.Order{}, err
	}
	if _, err := s.resolver.OrderStatus(ctx, input.StatusID); err != nil {
		return model.Order{}, err
	}

	lines, total, err := pricing.PriceItems(ctx, s.resolver, toPricingRequests(input.Items))
	if err != nil {
		return model.Order{}, err
	}

	now := time.Now()
	ord := model.Order{
		Base:       model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		SupplierID: input.SupplierID,
		CustomerID: input.CustomerID,
		StatusID:   input.StatusID,
		Address:    input.Address,
		TotalPrice: total,
	}

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		// parent row first: items carry a foreign key to the generated order id
		if err := s.repo.Insert(ctx, ord); err != nil {
			return err
		}
		if err := s.repo.InsertItems(ctx, buildItems(ord.ID, lines, now)); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregateOrder,
			Op:          event.OpCreated,
			AggregateID: ord.ID,
		})
	})
	if err != nil {
		return model.Order{}, err
	}

	s.logger.Infow("created order", "id", ord.ID, "total", total)
	return s.GetByID(ctx, ord.ID)
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Order, error) {
	if err := validateID(id); err != nil {
		return model.Order{}, err
	}

	ord, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Order{}, apperr.MaskNoRows(err, "Order not found")
	}

	if input.SupplierID != "" {
		if _, err := s.resolver.Supplier(ctx, input.SupplierID); err != nil {
			return model.Order{}, err
		}
		ord.SupplierID = input.SupplierID
	}
	if input.CustomerID != "" {
		if _, err := s.resolver.Customer(ctx, input.CustomerID); err != nil {
			return model.Order{}, err
		}
		ord.CustomerID = input.CustomerID
	}
	if input.StatusID != "" {
		if _, err := s.resolver.OrderStatus(ctx, input.StatusID); err != nil {
			return model.Order{}, err
		}
		ord.StatusID = input.StatusID
	}

	// an explicit empty address is ignored, not treated as "clear"
	if input.Address != "" {
		ord.Address = input.Address
	}

	// an empty or absent item list is a no-op; there is no way to clear an
	// order's items through update
	replace := len(input.Items) > 0
	var lines []pricing.Line
	if replace {
		priced, total, err := pricing.PriceItems(ctx, s.resolver, toPricingRequests(input.Items))
		if err != nil {
			return model.Order{}, err
		}
		lines = priced
		ord.TotalPrice = total
	}

	ord.UpdatedAt = time.Now()

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		if replace {
			if err := s.repo.DeleteItems(ctx, ord.ID); err != nil {
				return err
			}
			if err := s.repo.InsertItems(ctx, buildItems(ord.ID, lines, ord.UpdatedAt)); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, ord); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregateOrder,
			Op:          event.OpUpdated,
			AggregateID: ord.ID,
		})
	})
	if err != nil {
		return model.Order{}, err
	}

	s.logger.Infow("updated order", "id", ord.ID)
	return s.GetByID(ctx, id)
}

func (s service) DeleteByID(ctx context.Context, id string) (model.Order, error) {
	ord, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Order{}, err
	}

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		// children first, the parent row last
		if err := s.repo.DeleteItems(ctx, ord.ID); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, ord.ID); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregateOrder,
			Op:          event.OpDeleted,
			AggregateID: ord.ID,
		})
	})
	if err != nil {
		return model.Order{}, err
	}

	s.logger.Infow("deleted order", "id", ord.ID)
	return ord, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.Order, error) {
	if err := validateID(id); err != nil {
		return model.Order{}, err
	}

	ord, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Order{}, apperr.MaskNoRows(err, "Order not found")
	}

	if err := s.attach(ctx, &ord); err != nil {
		return model.Order{}, err
	}
	return ord, nil
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	orders, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	for i := range orders {
		if err := s.attach(ctx, &orders[i]); err != nil {
			return ListResult{}, err
		}
	}

	return ListResult{
		Orders: orders,
		Total:  total,
		Offset: skip,
		Limit:  take,
	}, nil
}

func (s service) attach(ctx context.Context, ord *model.Order) error {
	supplier, err := s.resolver.Supplier(ctx, ord.SupplierID)
	if err != nil {
		return err
	}
	ord.Supplier = &supplier

	customer, err := s.resolver.Customer(ctx, ord.CustomerID)
	if err != nil {
		return err
	}
	ord.Customer = &customer

	status, err := s.resolver.OrderStatus(ctx, ord.StatusID)
	if err != nil {
		return err
	}
	ord.Status = &status

	items, err := s.repo.GetItems(ctx, ord.ID)
	if err != nil {
		return err
	}

	if len(items) > 0 {
		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		products, err := s.resolver.ProductBatch(ctx, ids)
		if err != nil {
			return err
		}
		for i := range items {
			product := products[items[i].ProductID]
			items[i].Product = &product
		}
	}
	ord.Items = items
	return nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperr.New(apperr.BadRequest, "Not valid id type")
	}
	return nil
}

func toPricingRequests(items []ItemInput) []pricing.Request {
	res := make([]pricing.Request, 0, len(items))
	for _, item := range items {
		res = append(res, pricing.Request{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return res
}

func buildItems(orderID string, lines []pricing.Line, now time.Time) []model.OrderItem {
	res := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		res = append(res, model.OrderItem{
			Base:      model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
			OrderID:   orderID,
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
		})
	}
	return res
}
