package service

import (
	"time"

	"coopcycle-service/internal/models"
)

var Orders = Entity[models.Order, OrderDTO]{
	Name: "order",
	ToDTO: func(o *models.Order) *OrderDTO {
		return &OrderDTO{
			ID:       o.ID.Ref(),
			DateTime: ptr(o.DateTime),
			Status:   ptr(o.Status),
			Basket:   refTo(o.BasketID),
			Payment:  refTo(o.PaymentID),
		}
	},
	ToEntity: func(d *OrderDTO) *models.Order {
		return &models.Order{
			ID:        idOf(d.ID),
			DateTime:  val(d.DateTime),
			Status:    val(d.Status),
			BasketID:  d.Basket.id(),
			PaymentID: d.Payment.id(),
		}
	},
	DTOID: func(d *OrderDTO) *models.ID { return d.ID },
	Patch: Patch[models.Order, OrderDTO]{
		Field(func(d *OrderDTO) *time.Time { return d.DateTime }, func(o *models.Order, v time.Time) { o.DateTime = v }),
		Field(func(d *OrderDTO) *models.OrderStatus { return d.Status }, func(o *models.Order, v models.OrderStatus) { o.Status = v }),
	},
}

var Baskets = Entity[models.Basket, BasketDTO]{
	Name: "basket",
	ToDTO: func(b *models.Basket) *BasketDTO {
		return &BasketDTO{
			ID:          b.ID.Ref(),
			Description: clone(b.Description),
			Price:       ptr(b.Price),
			Restaurant:  refTo(b.RestaurantID),
		}
	},
	ToEntity: func(d *BasketDTO) *models.Basket {
		return &models.Basket{
			ID:           idOf(d.ID),
			Description:  clone(d.Description),
			Price:        val(d.Price),
			RestaurantID: d.Restaurant.id(),
		}
	},
	DTOID: func(d *BasketDTO) *models.ID { return d.ID },
	Patch: Patch[models.Basket, BasketDTO]{
		Field(func(d *BasketDTO) *string { return d.Description }, func(b *models.Basket, v string) { b.Description = &v }),
		Field(func(d *BasketDTO) *float64 { return d.Price }, func(b *models.Basket, v float64) { b.Price = v }),
	},
}

var Payments = Entity[models.Payment, PaymentDTO]{
	Name: "payment",
	ToDTO: func(p *models.Payment) *PaymentDTO {
		return &PaymentDTO{
			ID:          p.ID.Ref(),
			Amount:      ptr(p.Amount),
			PaymentType: ptr(p.PaymentType),
		}
	},
	ToEntity: func(d *PaymentDTO) *models.Payment {
		return &models.Payment{
			ID:          idOf(d.ID),
			Amount:      val(d.Amount),
			PaymentType: val(d.PaymentType),
		}
	},
	DTOID: func(d *PaymentDTO) *models.ID { return d.ID },
	Patch: Patch[models.Payment, PaymentDTO]{
		Field(func(d *PaymentDTO) *float64 { return d.Amount }, func(p *models.Payment, v float64) { p.Amount = v }),
		Field(func(d *PaymentDTO) *models.PaymentType { return d.PaymentType }, func(p *models.Payment, v models.PaymentType) { p.PaymentType = v }),
	},
}

var Restaurants = Entity[models.Restaurant, RestaurantDTO]{
	Name: "restaurant",
	ToDTO: func(r *models.Restaurant) *RestaurantDTO {
		return &RestaurantDTO{
			ID:              r.ID.Ref(),
			Name:            ptr(r.Name),
			Address:         ptr(r.Address),
			Menu:            clone(r.Menu),
			RestaurantOwner: refTo(r.RestaurantOwnerID),
		}
	},
	ToEntity: func(d *RestaurantDTO) *models.Restaurant {
		return &models.Restaurant{
			ID:                idOf(d.ID),
			Name:              val(d.Name),
			Address:           val(d.Address),
			Menu:              clone(d.Menu),
			RestaurantOwnerID: d.RestaurantOwner.id(),
		}
	},
	DTOID: func(d *RestaurantDTO) *models.ID { return d.ID },
	Patch: Patch[models.Restaurant, RestaurantDTO]{
		Field(func(d *RestaurantDTO) *string { return d.Name }, func(r *models.Restaurant, v string) { r.Name = v }),
		Field(func(d *RestaurantDTO) *string { return d.Address }, func(r *models.Restaurant, v string) { r.Address = v }),
		Field(func(d *RestaurantDTO) *string { return d.Menu }, func(r *models.Restaurant, v string) { r.Menu = &v }),
	},
}

var RestaurantOwners = Entity[models.RestaurantOwner, RestaurantOwnerDTO]{
	Name: "restaurant-owner",
	ToDTO: func(o *models.RestaurantOwner) *RestaurantOwnerDTO {
		return &RestaurantOwnerDTO{
			ID:          o.ID.Ref(),
			FirstName:   ptr(o.FirstName),
			LastName:    ptr(o.LastName),
			Order:       refTo(o.OrderID),
			Shareholder: refTo(o.ShareholderID),
		}
	},
	ToEntity: func(d *RestaurantOwnerDTO) *models.RestaurantOwner {
		return &models.RestaurantOwner{
			ID:            idOf(d.ID),
			FirstName:     val(d.FirstName),
			LastName:      val(d.LastName),
			OrderID:       d.Order.id(),
			ShareholderID: d.Shareholder.id(),
		}
	},
	DTOID: func(d *RestaurantOwnerDTO) *models.ID { return d.ID },
	Patch: Patch[models.RestaurantOwner, RestaurantOwnerDTO]{
		Field(func(d *RestaurantOwnerDTO) *string { return d.FirstName }, func(o *models.RestaurantOwner, v string) { o.FirstName = v }),
		Field(func(d *RestaurantOwnerDTO) *string { return d.LastName }, func(o *models.RestaurantOwner, v string) { o.LastName = v }),
	},
}

var Shareholders = Entity[models.Shareholder, ShareholderDTO]{
	Name: "shareholder",
	ToDTO: func(s *models.Shareholder) *ShareholderDTO {
		return &ShareholderDTO{
			ID:        s.ID.Ref(),
			FirstName: ptr(s.FirstName),
			LastName:  ptr(s.LastName),
			Type:      ptr(s.Type),
		}
	},
	ToEntity: func(d *ShareholderDTO) *models.Shareholder {
		return &models.Shareholder{
			ID:        idOf(d.ID),
			FirstName: val(d.FirstName),
			LastName:  val(d.LastName),
			Type:      val(d.Type),
		}
	},
	DTOID: func(d *ShareholderDTO) *models.ID { return d.ID },
	Patch: Patch[models.Shareholder, ShareholderDTO]{
		Field(func(d *ShareholderDTO) *string { return d.FirstName }, func(s *models.Shareholder, v string) { s.FirstName = v }),
		Field(func(d *ShareholderDTO) *string { return d.LastName }, func(s *models.Shareholder, v string) { s.LastName = v }),
		Field(func(d *ShareholderDTO) *models.ShareholderType { return d.Type }, func(s *models.Shareholder, v models.ShareholderType) { s.Type = v }),
	},
}

var Clients = Entity[models.Client, ClientDTO]{
	Name: "client",
	ToDTO: func(c *models.Client) *ClientDTO {
		return &ClientDTO{
			ID:        c.ID.Ref(),
			FirstName: ptr(c.FirstName),
			LastName:  ptr(c.LastName),
			Email:     ptr(c.Email),
			Phone:     ptr(c.Phone),
			Address:   ptr(c.Address),
			Order:     refTo(c.OrderID),
		}
	},
	ToEntity: func(d *ClientDTO) *models.Client {
		return &models.Client{
			ID:        idOf(d.ID),
			FirstName: val(d.FirstName),
			LastName:  val(d.LastName),
			Email:     val(d.Email),
			Phone:     val(d.Phone),
			Address:   val(d.Address),
			OrderID:   d.Order.id(),
		}
	},
	DTOID: func(d *ClientDTO) *models.ID { return d.ID },
	Patch: Patch[models.Client, ClientDTO]{
		Field(func(d *ClientDTO) *string { return d.FirstName }, func(c *models.Client, v string) { c.FirstName = v }),
		Field(func(d *ClientDTO) *string { return d.LastName }, func(c *models.Client, v string) { c.LastName = v }),
		Field(func(d *ClientDTO) *string { return d.Email }, func(c *models.Client, v string) { c.Email = v }),
		Field(func(d *ClientDTO) *string { return d.Phone }, func(c *models.Client, v string) { c.Phone = v }),
		Field(func(d *ClientDTO) *string { return d.Address }, func(c *models.Client, v string) { c.Address = v }),
	},
}
