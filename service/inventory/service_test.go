package inventory

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/event"
	"github.com/minhtrifit/hubtech-interview-api/model"
)

type fakeRepo struct {
	inventories map[string]model.Inventory
	items       map[string][]model.InventoryItem
	ops         []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		inventories: map[string]model.Inventory{},
		items:       map[string][]model.InventoryItem{},
	}
}

func (r *fakeRepo) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeRepo) Insert(ctx context.Context, inventory model.Inventory) error {
	r.ops = append(r.ops, "insert")
	r.inventories[inventory.ID] = inventory
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, inventory model.Inventory) error {
	r.ops = append(r.ops, "update")
	r.inventories[inventory.ID] = inventory
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.ops = append(r.ops, "delete")
	delete(r.inventories, id)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (model.Inventory, error) {
	inv, ok := r.inventories[id]
	if !ok {
		return model.Inventory{}, sql.ErrNoRows
	}
	return inv, nil
}

func (r *fakeRepo) List(ctx context.Context, offset, limit int) ([]model.Inventory, error) {
	res := make([]model.Inventory, 0, len(r.inventories))
	for _, inv := range r.inventories {
		res = append(res, inv)
	}
	return res, nil
}

func (r *fakeRepo) ListBySupplier(ctx context.Context, supplierID string, offset, limit int) ([]model.Inventory, error) {
	var res []model.Inventory
	for _, inv := range r.inventories {
		if inv.SupplierID == supplierID {
			res = append(res, inv)
		}
	}
	return res, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(r.inventories), nil
}

func (r *fakeRepo) InsertItems(ctx context.Context, items []model.InventoryItem) error {
	r.ops = append(r.ops, "insertItems")
	for _, item := range items {
		r.items[item.InventoryID] = append(r.items[item.InventoryID], item)
	}
	return nil
}

func (r *fakeRepo) DeleteItems(ctx context.Context, inventoryID string) error {
	r.ops = append(r.ops, "deleteItems")
	delete(r.items, inventoryID)
	return nil
}

func (r *fakeRepo) GetItems(ctx context.Context, inventoryID string) ([]model.InventoryItem, error) {
	return r.items[inventoryID], nil
}

type fakeResolver struct {
	suppliers map[string]model.Supplier
	products  map[string]model.Product
}

func (f fakeResolver) Supplier(ctx context.Context, id string) (model.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return model.Supplier{}, apperr.New(apperr.NotFound, "Supplier not found")
	}
	return s, nil
}

func (f fakeResolver) ProductBatch(ctx context.Context, ids []string) (map[string]model.Product, error) {
	res := make(map[string]model.Product, len(ids))
	for _, id := range ids {
		p, ok := f.products[id]
		if !ok {
			return nil, apperr.Newf(apperr.NotFound, "Product %s not found", id)
		}
		res[id] = p
	}
	return res, nil
}

type fakeOutbox struct {
	events []event.AggregateChanged
}

func (o *fakeOutbox) Create(ctx context.Context, e event.AggregateChanged) error {
	o.events = append(o.events, e)
	return nil
}

func (o *fakeOutbox) GetPending(ctx context.Context, limit int) ([]model.Outbox, error) {
	return nil, nil
}

func (o *fakeOutbox) MarkDone(ctx context.Context, ids []int64) error {
	return nil
}

type fixture struct {
	repo     *fakeRepo
	outbox   *fakeOutbox
	service  IService
	supplier model.Supplier
	product  model.Product
	product2 model.Product
}

func newFixture() fixture {
	supplier := model.Supplier{Base: model.Base{ID: uuid.NewString()}, Name: "ACME"}
	product := model.Product{Base: model.Base{ID: uuid.NewString()}, Name: "Widget"}
	product2 := model.Product{Base: model.Base{ID: uuid.NewString()}, Name: "Gadget"}

	resolver := fakeResolver{
		suppliers: map[string]model.Supplier{supplier.ID: supplier},
		products: map[string]model.Product{
			product.ID:  product,
			product2.ID: product2,
		},
	}

	repo := newFakeRepo()
	ob := &fakeOutbox{}
	return fixture{
		repo:     repo,
		outbox:   ob,
		service:  NewService(repo, resolver, ob, zap.NewNop().Sugar()),
		supplier: supplier,
		product:  product,
		product2: product2,
	}
}

func Test_Create(t *testing.T) {
	f := newFixture()

	inv, err := f.service.Create(context.Background(), CreateInput{
		SupplierID: f.supplier.ID,
		Location:   "Warehouse A",
		Items: []ItemInput{
			{ProductID: f.product.ID, Quantity: 5},
			{ProductID: f.product2.ID, Quantity: 3},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Warehouse A", inv.Location)
	assert.Equal(t, "ACME", inv.Supplier.Name)
	assert.Len(t, inv.Items, 2)

	if assert.Len(t, f.outbox.events, 1) {
		assert.Equal(t, event.AggregateInventory, f.outbox.events[0].Aggregate)
		assert.Equal(t, event.OpCreated, f.outbox.events[0].Op)
	}
}

func Test_Create_UnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), CreateInput{
		SupplierID: f.supplier.ID,
		Location:   "Warehouse A",
		Items:      []ItemInput{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, f.repo.inventories)
	assert.Empty(t, f.repo.items)
	assert.Empty(t, f.outbox.events)
}

func Test_UpdateByID_EmptyLocationIgnored(t *testing.T) {
	f := newFixture()

	inv, err := f.service.Create(context.Background(), CreateInput{
		SupplierID: f.supplier.ID,
		Location:   "Warehouse A",
		Items:      []ItemInput{{ProductID: f.product.ID, Quantity: 5}},
	})
	assert.NoError(t, err)

	updated, err := f.service.UpdateByID(context.Background(), inv.ID, UpdateInput{
		Location: "",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Warehouse A", updated.Location)
	// no item list, items stay
	assert.Len(t, updated.Items, 1)
}

func Test_UpdateByID_ReplacesItems(t *testing.T) {
	f := newFixture()

	inv, err := f.service.Create(context.Background(), CreateInput{
		SupplierID: f.supplier.ID,
		Location:   "Warehouse A",
		Items: []ItemInput{
			{ProductID: f.product.ID, Quantity: 5},
			{ProductID: f.product2.ID, Quantity: 3},
		},
	})
	assert.NoError(t, err)

	updated, err := f.service.UpdateByID(context.Background(), inv.ID, UpdateInput{
		Items: []ItemInput{{ProductID: f.product2.ID, Quantity: 9}},
	})
	assert.NoError(t, err)
	if assert.Len(t, updated.Items, 1) {
		assert.Equal(t, f.product2.ID, updated.Items[0].ProductID)
		assert.Equal(t, 9, updated.Items[0].Quantity)
	}
}

func Test_DeleteByID(t *testing.T) {
	f := newFixture()

	inv, err := f.service.Create(context.Background(), CreateInput{
		SupplierID: f.supplier.ID,
		Location:   "Warehouse A",
		Items: []ItemInput{
			{ProductID: f.product.ID, Quantity: 5},
			{ProductID: f.product2.ID, Quantity: 3},
		},
	})
	assert.NoError(t, err)

	f.repo.ops = nil
	deleted, err := f.service.DeleteByID(context.Background(), inv.ID)
	assert.NoError(t, err)
	assert.Len(t, deleted.Items, 2)

	// items removed before the parent row
	assert.Equal(t, []string{"deleteItems", "delete"}, f.repo.ops)

	_, err = f.service.GetByID(context.Background(), inv.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "Inventory not found")
}

func Test_GetAllBySupplierID(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), CreateInput{
		SupplierID: f.supplier.ID,
		Location:   "Warehouse A",
	})
	assert.NoError(t, err)

	res, err := f.service.GetAllBySupplierID(context.Background(), f.supplier.ID, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, res.Inventories, 1)
	// total counts the returned page, not the table
	assert.Equal(t, 1, res.Total)

	_, err = f.service.GetAllBySupplierID(context.Background(), "bogus", nil, nil)
	assert.True(t, apperr.IsBadRequest(err))
}
