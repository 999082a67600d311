// Package pricing computes frozen line subtotals and the aggregate total for
// price-bearing item batches.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minhtrifit/hubtech-interview-api/model"
)

type Request struct {
	ProductID string
	Quantity  int
}

type Line struct {
	Product  model.Product
	Quantity int
	Subtotal decimal.Decimal
}

// ProductResolver is the batch-atomic product lookup; resolution of the whole
// batch happens before any subtotal is computed.
type ProductResolver interface {
	ProductBatch(ctx context.Context, ids []string) (map[string]model.Product, error)
}

// PriceItems resolves every requested product, then prices each line as
// product price x quantity and sums the total. A single unresolvable id
// rejects the whole batch with no partial result.
func PriceItems(ctx context.Context, resolver ProductResolver, reqs []Request) ([]Line, decimal.Decimal, error) {
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ProductID)
	}

	products, err := resolver.ProductBatch(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}

	lines := make([]Line, 0, len(reqs))
	total := decimal.Zero
	for _, req := range reqs {
		product := products[req.ProductID]
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
		lines = append(lines, Line{
			Product:  product,
			Quantity: req.Quantity,
			Subtotal: subtotal,
		})
		total = total.Add(subtotal)
	}
	return lines, total, nil
}
