package models

import "time"

// Setting an association through its setter keeps the matching id in sync.

type Order struct {
	ID        ID
	DateTime  time.Time
	Status    OrderStatus
	BasketID  *ID
	PaymentID *ID

	Basket  *Basket
	Payment *Payment
}

func (o *Order) Key() (ID, bool) { return o.ID, o.ID.IsSet() }

func (o *Order) SetBasket(b *Basket) {
	o.Basket = b
	o.BasketID = nil
	if b != nil {
		o.BasketID = b.ID.Ref()
	}
}

func (o *Order) SetPayment(p *Payment) {
	o.Payment = p
	o.PaymentID = nil
	if p != nil {
		o.PaymentID = p.ID.Ref()
	}
}

type Basket struct {
	ID           ID
	Description  *string
	Price        float64
	RestaurantID *ID

	Restaurant *Restaurant
}

func (b *Basket) Key() (ID, bool) { return b.ID, b.ID.IsSet() }

func (b *Basket) SetRestaurant(r *Restaurant) {
	b.Restaurant = r
	b.RestaurantID = nil
	if r != nil {
		b.RestaurantID = r.ID.Ref()
	}
}

type Payment struct {
	ID          ID
	Amount      float64
	PaymentType PaymentType
}

func (p *Payment) Key() (ID, bool) { return p.ID, p.ID.IsSet() }

type Restaurant struct {
	ID                ID
	Name              string
	Address           string
	Menu              *string
	RestaurantOwnerID *ID

	RestaurantOwner *RestaurantOwner
}

func (r *Restaurant) Key() (ID, bool) { return r.ID, r.ID.IsSet() }

func (r *Restaurant) SetRestaurantOwner(o *RestaurantOwner) {
	r.RestaurantOwner = o
	r.RestaurantOwnerID = nil
	if o != nil {
		r.RestaurantOwnerID = o.ID.Ref()
	}
}

type RestaurantOwner struct {
	ID            ID
	FirstName     string
	LastName      string
	OrderID       *ID
	ShareholderID *ID

	Order       *Order
	Shareholder *Shareholder
}

func (o *RestaurantOwner) Key() (ID, bool) { return o.ID, o.ID.IsSet() }

func (o *RestaurantOwner) SetOrder(ord *Order) {
	o.Order = ord
	o.OrderID = nil
	if ord != nil {
		o.OrderID = ord.ID.Ref()
	}
}

func (o *RestaurantOwner) SetShareholder(s *Shareholder) {
	o.Shareholder = s
	o.ShareholderID = nil
	if s != nil {
		o.ShareholderID = s.ID.Ref()
	}
}

type Shareholder struct {
	ID        ID
	FirstName string
	LastName  string
	Type      ShareholderType
}

func (s *Shareholder) Key() (ID, bool) { return s.ID, s.ID.IsSet() }

type Client struct {
	ID        ID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	OrderID   *ID

	Order *Order
}

func (c *Client) Key() (ID, bool) { return c.ID, c.ID.IsSet() }

func (c *Client) SetOrder(o *Order) {
	c.Order = o
	c.OrderID = nil
	if o != nil {
		c.OrderID = o.ID.Ref()
	}
}
