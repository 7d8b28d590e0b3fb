package api

import (
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

func cartFixture() domain.Cart {
	now := time.Now()
	return domain.Cart{
		OwnerID: "owner-1",
		Items: []domain.CartItem{
			{
				ID:        "item-1",
				ProductID: "prod-1",
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("12.50"),
				Stock:     5,
				Name:      "clay pot",
				AddedAt:   now,
				UpdatedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
