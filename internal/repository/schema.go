package repository

import (
	"fmt"
	"time"

	"coopcycle-service/internal/models"
)

// Schema holds the metadata of every entity table.
type Schema struct {
	Orders           *Table[models.Order]
	Baskets          *Table[models.Basket]
	Payments         *Table[models.Payment]
	Restaurants      *Table[models.Restaurant]
	RestaurantOwners *Table[models.RestaurantOwner]
	Shareholders     *Table[models.Shareholder]
	Clients          *Table[models.Client]
}

// NewSchema describes the seven coopcycle tables. It panics if the
// description is inconsistent, which can only be a programming error.
func NewSchema() *Schema {
	s := &Schema{
		Orders: NewTable("orders", func(o *models.Order) *models.ID { return &o.ID },
			Timestamp("date_time", "dateTime", func(o *models.Order) *time.Time { return &o.DateTime }),
			Enum("status", "status", func(o *models.Order) *models.OrderStatus { return &o.Status }, models.OrderStatuses),
			Ref("basket_id", "basketId", func(o *models.Order) **models.ID { return &o.BasketID }),
			Ref("payment_id", "paymentId", func(o *models.Order) **models.ID { return &o.PaymentID }),
		),
		Baskets: NewTable("basket", func(b *models.Basket) *models.ID { return &b.ID },
			OptionalText("description", "description", func(b *models.Basket) **string { return &b.Description }),
			Float("price", "price", func(b *models.Basket) *float64 { return &b.Price }),
			Ref("restaurant_id", "restaurantId", func(b *models.Basket) **models.ID { return &b.RestaurantID }),
		),
		Payments: NewTable("payment", func(p *models.Payment) *models.ID { return &p.ID },
			Float("amount", "amount", func(p *models.Payment) *float64 { return &p.Amount }),
			Enum("payment_type", "paymentType", func(p *models.Payment) *models.PaymentType { return &p.PaymentType }, models.PaymentTypes),
		),
		Restaurants: NewTable("restaurant", func(r *models.Restaurant) *models.ID { return &r.ID },
			Text("name", "name", func(r *models.Restaurant) *string { return &r.Name }),
			Text("address", "address", func(r *models.Restaurant) *string { return &r.Address }),
			OptionalText("menu", "menu", func(r *models.Restaurant) **string { return &r.Menu }),
			Ref("restaurant_owner_id", "restaurantOwnerId", func(r *models.Restaurant) **models.ID { return &r.RestaurantOwnerID }),
		),
		RestaurantOwners: NewTable("restaurant_owner", func(o *models.RestaurantOwner) *models.ID { return &o.ID },
			Text("first_name", "firstName", func(o *models.RestaurantOwner) *string { return &o.FirstName }),
			Text("last_name", "lastName", func(o *models.RestaurantOwner) *string { return &o.LastName }),
			Ref("order_id", "orderId", func(o *models.RestaurantOwner) **models.ID { return &o.OrderID }),
			Ref("shareholder_id", "shareholderId", func(o *models.RestaurantOwner) **models.ID { return &o.ShareholderID }),
		),
		Shareholders: NewTable("shareholder", func(s *models.Shareholder) *models.ID { return &s.ID },
			Text("first_name", "firstName", func(s *models.Shareholder) *string { return &s.FirstName }),
			Text("last_name", "lastName", func(s *models.Shareholder) *string { return &s.LastName }),
			Enum("type", "type", func(s *models.Shareholder) *models.ShareholderType { return &s.Type }, models.ShareholderTypes),
		),
		Clients: NewTable("client", func(c *models.Client) *models.ID { return &c.ID },
			Text("first_name", "firstName", func(c *models.Client) *string { return &c.FirstName }),
			Text("last_name", "lastName", func(c *models.Client) *string { return &c.LastName }),
			Text("email", "email", func(c *models.Client) *string { return &c.Email }),
			Text("phone", "phone", func(c *models.Client) *string { return &c.Phone }),
			Text("address", "address", func(c *models.Client) *string { return &c.Address }),
			Ref("order_id", "orderId", func(c *models.Client) **models.ID { return &c.OrderID }),
		),
	}

	// relations are wired after every table exists: the graph has cycles
	// (order -> basket -> restaurant -> owner -> order)
	s.Orders.Relations = []Relation[models.Order]{
		HasOne("basket", "basket_id", "basket", s.Baskets, (*models.Order).SetBasket),
		HasOne("payment", "payment_id", "payment", s.Payments, (*models.Order).SetPayment),
	}
	s.Baskets.Relations = []Relation[models.Basket]{
		HasOne("restaurant", "restaurant_id", "restaurant", s.Restaurants, (*models.Basket).SetRestaurant),
	}
	s.Restaurants.Relations = []Relation[models.Restaurant]{
		HasOne("restaurant_owner", "restaurant_owner_id", "restaurantOwner", s.RestaurantOwners, (*models.Restaurant).SetRestaurantOwner),
	}
	s.RestaurantOwners.Relations = []Relation[models.RestaurantOwner]{
		HasOne("order", "order_id", "order", s.Orders, (*models.RestaurantOwner).SetOrder),
		HasOne("shareholder", "shareholder_id", "shareholder", s.Shareholders, (*models.RestaurantOwner).SetShareholder),
	}
	s.Clients.Relations = []Relation[models.Client]{
		HasOne("order", "order_id", "order", s.Orders, (*models.Client).SetOrder),
	}

	for _, err := range []error{
		s.Orders.validate(),
		s.Baskets.validate(),
		s.Payments.validate(),
		s.Restaurants.validate(),
		s.RestaurantOwners.validate(),
		s.Shareholders.validate(),
		s.Clients.validate(),
	} {
		if err != nil {
			panic(fmt.Sprintf("repository: invalid schema: %v", err))
		}
	}
	return s
}
