package response

import (
	"github.com/shopspring/decimal"

	"github.com/raditia/gerai/cart/pkg/store"
)

func FromSnapshot(snapshot store.Snapshot) Cart {
	items := make([]CartItem, len(snapshot.Items))
	for i, line := range snapshot.Items {
		price := line.Price.Decimal()
		items[i] = CartItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageUrl:  line.ImageUrl,
			Price:     price,
			Quantity:  line.Quantity,
			Subtotal:  price.Mul(decimal.NewFromInt32(line.Quantity)),
		}
	}
	return Cart{
		Items:      items,
		Count:      snapshot.Count,
		Total:      snapshot.Total,
		DrawerOpen: snapshot.DrawerOpen,
	}
}
