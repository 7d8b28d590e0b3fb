package api

import (
	"context"
	"fmt"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type OrdersClient struct{ c *Client }

func NewOrdersClient(c *Client) *OrdersClient { return &OrdersClient{c: c} }

type orderItemPayload struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type orderPayload struct {
	Items []orderItemPayload `json:"items"`
	Total string             `json:"total"`
}

// Submit turns the cart into an order upstream. The backend owns order
// state from here on; the gateway only clears the local cart afterwards.
func (oc *OrdersClient) Submit(ctx context.Context, cart domain.Cart) (domain.Order, error) {
	payload := orderPayload{
		Items: make([]orderItemPayload, 0, len(cart.Items)),
		Total: cart.Subtotal().String(),
	}
	for _, item := range cart.Items {
		payload.Items = append(payload.Items, orderItemPayload{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}

	var dto orderDTO
	if err := oc.c.postJSON(ctx, "/api/orders/", payload, &dto); err != nil {
		return domain.Order{}, fmt.Errorf("submit order: %w", err)
	}
	return dto.toDomain(), nil
}

func (oc *OrdersClient) List(ctx context.Context) ([]domain.Order, error) {
	var dtos []orderDTO
	if err := oc.c.getJSON(ctx, "/api/orders/", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

type orderDTO struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Items   []struct {
		ProductID string `json:"product_id"`
		VariantID string `json:"variant_id"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unit_price"`
	} `json:"items"`
	Total  string `json:"total"`
	Status string `json:"status"`
}

func (d orderDTO) toDomain() domain.Order {
	order := domain.Order{
		ID:      d.ID,
		OwnerID: d.OwnerID,
		Status:  d.Status,
	}
	if total := domain.ParsePrice(d.Total); total != nil {
		order.Total = *total
	}
	for _, it := range d.Items {
		item := domain.OrderItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		}
		if price := domain.ParsePrice(it.UnitPrice); price != nil {
			item.UnitPrice = *price
		} else {
			item.UnitPrice = decimal.Zero
		}
		order.Items = append(order.Items, item)
	}
	return order
}
