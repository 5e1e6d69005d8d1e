package service

import (
	"coopcycle-service/internal/events"
	"coopcycle-service/internal/models"
	"coopcycle-service/internal/repository"
)

// Services holds one service per entity.
type Services struct {
	Orders           *Service[models.Order, OrderDTO]
	Baskets          *Service[models.Basket, BasketDTO]
	Payments         *Service[models.Payment, PaymentDTO]
	Restaurants      *Service[models.Restaurant, RestaurantDTO]
	RestaurantOwners *Service[models.RestaurantOwner, RestaurantOwnerDTO]
	Shareholders     *Service[models.Shareholder, ShareholderDTO]
	Clients          *Service[models.Client, ClientDTO]
}

// NewServices builds the repositories of every table in schema on db and
// the services on top of them. All services share one validator.
func NewServices(db repository.DBTX, schema *repository.Schema, publisher events.Publisher) *Services {
	v := NewValidator()
	return &Services{
		Orders:           New(Orders, repository.New(db, schema.Orders), v, publisher),
		Baskets:          New(Baskets, repository.New(db, schema.Baskets), v, publisher),
		Payments:         New(Payments, repository.New(db, schema.Payments), v, publisher),
		Restaurants:      New(Restaurants, repository.New(db, schema.Restaurants), v, publisher),
		RestaurantOwners: New(RestaurantOwners, repository.New(db, schema.RestaurantOwners), v, publisher),
		Shareholders:     New(Shareholders, repository.New(db, schema.Shareholders), v, publisher),
		Clients:          New(Clients, repository.New(db, schema.Clients), v, publisher),
	}
}
