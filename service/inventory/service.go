package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/event"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/outbox"
	"github.com/minhtrifit/hubtech-interview-api/response"
)

type Resolver interface {
	Supplier(ctx context.Context, id string) (model.Supplier, error)
	ProductBatch(ctx context.Context, ids []string) (map[string]model.Product, error)
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateInput struct {
	SupplierID string      `json:"supplierId"`
	Location   string      `json:"location"`
	Items      []ItemInput `json:"items"`
}

// UpdateInput follows the same partial-update rules as orders: empty fields
// and an empty item list leave the stored aggregate untouched.
type UpdateInput struct {
	SupplierID string      `json:"supplierId"`
	Location   string      `json:"location"`
	Items      []ItemInput `json:"items"`
}

type ListResult struct {
	Inventories []model.Inventory `json:"inventories"`
	Total       int               `json:"total"`
	Offset      int               `json:"offset"`
	Limit       int               `json:"limit"`
}

type IService interface {
	Create(ctx context.Context, input CreateInput) (model.Inventory, error)
	UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Inventory, error)
	DeleteByID(ctx context.Context, id string) (model.Inventory, error)
	GetByID(ctx context.Context, id string) (model.Inventory, error)
	GetAll(ctx context.Context, offset, limit *int) (ListResult, error)
	GetAllBySupplierID(ctx context.Context, supplierID string, offset, limit *int) (ListResult, error)
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

func (s service) Create(ctx context.Context, input CreateInput) (model.Inventory, error) {
	if _, err := s.resolver.Supplier(ctx, input.SupplierID); err != nil {
		return model.Inventory{}, err
	}

	// the whole batch must resolve before any write
	if _, err := s.resolver.ProductBatch(ctx, productIDs(input.Items)); err != nil {
		return model.Inventory{}, err
	}

	now := time.Now()
	inv := model.Inventory{
		Base:       model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		SupplierID: input.SupplierID,
		Location:   input.Location,
	}

	err := s.repo.Transact(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, inv); err != nil {
			return err
		}
		if err := s.repo.InsertItems(ctx, buildItems(inv.ID, input.Items, now)); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregateInventory,
			Op:          event.OpCreated,
			AggregateID: inv.ID,
		})
	})
	if err != nil {
		return model.Inventory{}, err
	}

	s.logger.Infow("created inventory", "id", inv.ID, "supplier", inv.SupplierID)
	return s.GetByID(ctx, inv.ID)
}

func (s service) UpdateByID(ctx context.Context, id string, input UpdateInput) (model.Inventory, error) {
	if err := validateID(id); err != nil {
		return model.Inventory{}, err
	}

	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Inventory{}, apperr.MaskNoRows(err, "Inventory not found")
	}

	if input.SupplierID != "" {
		if _, err := s.resolver.Supplier(ctx, input.SupplierID); err != nil {
			return model.Inventory{}, err
		}
		inv.SupplierID = input.SupplierID
	}

	// an empty location is ignored, not a clear
	if input.Location != "" {
		inv.Location = input.Location
	}

	replace := len(input.Items) > 0
	if replace {
		if _, err := s.resolver.ProductBatch(ctx, productIDs(input.Items)); err != nil {
			return model.Inventory{}, err
		}
	}

	inv.UpdatedAt = time.Now()

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		if replace {
			if err := s.repo.DeleteItems(ctx, inv.ID); err != nil {
				return err
			}
			if err := s.repo.InsertItems(ctx, buildItems(inv.ID, input.Items, inv.UpdatedAt)); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregateInventory,
			Op:          event.OpUpdated,
			AggregateID: inv.ID,
		})
	})
	if err != nil {
		return model.Inventory{}, err
	}

	s.logger.Infow("updated inventory", "id", inv.ID)
	return s.GetByID(ctx, id)
}

func (s service) DeleteByID(ctx context.Context, id string) (model.Inventory, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Inventory{}, err
	}

	err = s.repo.Transact(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, inv.ID); err != nil {
			return err
		}
		return s.outbox.Create(ctx, event.AggregateChanged{
			Aggregate:   event.AggregateInventory,
			Op:          event.OpDeleted,
			AggregateID: inv.ID,
		})
	})
	if err != nil {
		return model.Inventory{}, err
	}

	s.logger.Infow("deleted inventory", "id", inv.ID)
	return inv, nil
}

func (s service) GetByID(ctx context.Context, id string) (model.Inventory, error) {
	if err := validateID(id); err != nil {
		return model.Inventory{}, err
	}

	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Inventory{}, apperr.MaskNoRows(err, "Inventory not found")
	}

	if err := s.attach(ctx, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

func (s service) GetAll(ctx context.Context, offset, limit *int) (ListResult, error) {
	skip, take := response.Page(offset, limit)

	inventories, err := s.repo.List(ctx, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListResult{}, err
	}

	for i := range inventories {
		if err := s.attach(ctx, &inventories[i]); err != nil {
			return ListResult{}, err
		}
	}

	return ListResult{
		Inventories: inventories,
		Total:       total,
		Offset:      skip,
		Limit:       take,
	}, nil
}

func (s service) GetAllBySupplierID(ctx context.Context, supplierID string, offset, limit *int) (ListResult, error) {
	if err := validateID(supplierID); err != nil {
		return ListResult{}, err
	}

	skip, take := response.Page(offset, limit)

	inventories, err := s.repo.ListBySupplier(ctx, supplierID, skip, take)
	if err != nil {
		return ListResult{}, err
	}

	for i := range inventories {
		if err := s.attach(ctx, &inventories[i]); err != nil {
			return ListResult{}, err
		}
	}

	return ListResult{
		Inventories: inventories,
		Total:       len(inventories),
		Offset:      skip,
		Limit:       take,
	}, nil
}

func (s service) attach(ctx context.Context, inv *model.Inventory) error {
	supplier, err := s.resolver.Supplier(ctx, inv.SupplierID)
	if err != nil {
		return err
	}
	inv.Supplier = &supplier

	items, err := s.repo.GetItems(ctx, inv.ID)
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
	inv.Items = items
	return nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperr.New(apperr.BadRequest, "Not valid id type")
	}
	return nil
}

func productIDs(items []ItemInput) []string {
	res := make([]string, 0, len(items))
	for _, item := range items {
		res = append(res, item.ProductID)
	}
	return res
}

func buildItems(inventoryID string, items []ItemInput, now time.Time) []model.InventoryItem {
	res := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		res = append(res, model.InventoryItem{
			Base:        model.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
			InventoryID: inventoryID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
		})
	}
	return res
}
