package service

import (
	"encoding/json"
	"time"

	"coopcycle-service/internal/models"
)

// Ref stands in for an associated entity in a transfer object. It carries
// the id only, so nested graphs are never serialized.
type Ref struct {
	ID models.ID `json:"id"`
}

// UnmarshalJSON keeps the id of an association object and ignores the rest
// of it, so clients may send back a fuller representation.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var v struct {
		ID models.ID `json:"id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	r.ID = v.ID
	return nil
}

func refTo(id *models.ID) *Ref {
	if id == nil || !id.IsSet() {
		return nil
	}
	return &Ref{ID: *id}
}

func (r *Ref) id() *models.ID {
	if r == nil {
		return nil
	}
	return r.ID.Ref()
}

type OrderDTO struct {
	ID       *models.ID          `json:"id"`
	DateTime *time.Time          `json:"dateTime" validate:"required"`
	Status   *models.OrderStatus `json:"status" validate:"required,oneof=IN_PROGRESS READY DELIVERED" patch:"omitempty,oneof=IN_PROGRESS READY DELIVERED"`
	Basket   *Ref                `json:"basket"`
	Payment  *Ref                `json:"payment"`
}

type BasketDTO struct {
	ID          *models.ID `json:"id"`
	Description *string    `json:"description" validate:"omitempty,min=5,max=500" patch:"omitempty,max=500"`
	Price       *float64   `json:"price" validate:"required,gte=0" patch:"omitempty,gte=0"`
	Restaurant  *Ref       `json:"restaurant"`
}

type PaymentDTO struct {
	ID          *models.ID          `json:"id"`
	Amount      *float64            `json:"amount" validate:"required,gte=0" patch:"omitempty,gte=0"`
	PaymentType *models.PaymentType `json:"paymentType" validate:"required,oneof=CB MASTERCARD VISA PAYPAL APPLE_PAY GOOGLE_PAY MEAL_VOUCHER BITCOIN IZLY" patch:"omitempty,oneof=CB MASTERCARD VISA PAYPAL APPLE_PAY GOOGLE_PAY MEAL_VOUCHER BITCOIN IZLY"`
}

type RestaurantDTO struct {
	ID              *models.ID `json:"id"`
	Name            *string    `json:"name" validate:"required,min=2,max=100" patch:"omitempty,max=100"`
	Address         *string    `json:"address" validate:"required,min=5,max=100" patch:"omitempty,max=100"`
	Menu            *string    `json:"menu" validate:"omitempty,max=500" patch:"omitempty,max=500"`
	RestaurantOwner *Ref       `json:"restaurantOwner"`
}

type RestaurantOwnerDTO struct {
	ID          *models.ID `json:"id"`
	FirstName   *string    `json:"firstName" validate:"required,min=2,max=50" patch:"omitempty,max=50"`
	LastName    *string    `json:"lastName" validate:"required,min=2,max=50" patch:"omitempty,max=50"`
	Order       *Ref       `json:"order"`
	Shareholder *Ref       `json:"shareholder"`
}

type ShareholderDTO struct {
	ID        *models.ID              `json:"id"`
	FirstName *string                 `json:"firstName" validate:"required,min=2,max=50" patch:"omitempty,max=50"`
	LastName  *string                 `json:"lastName" validate:"required,min=2,max=50" patch:"omitempty,max=50"`
	Type      *models.ShareholderType `json:"type" validate:"required,oneof=CLIENT DRIVER RESTAURATEUR" patch:"omitempty,oneof=CLIENT DRIVER RESTAURATEUR"`
}

type ClientDTO struct {
	ID        *models.ID `json:"id"`
	FirstName *string    `json:"firstName" validate:"required,min=2,max=50" patch:"omitempty,max=50"`
	LastName  *string    `json:"lastName" validate:"required,min=2,max=50" patch:"omitempty,max=50"`
	Email     *string    `json:"email" validate:"required,email_pattern" patch:"omitempty,max=255"`
	Phone     *string    `json:"phone" validate:"required,phone_number" patch:"omitempty,max=32"`
	Address   *string    `json:"address" validate:"required,min=5,max=100" patch:"omitempty,max=100"`
	Order     *Ref       `json:"order"`
}
