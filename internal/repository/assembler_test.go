package repository

import (
	"errors"
	"testing"
	"time"

	"coopcycle-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRow(withBasket, withPayment bool) Row {
	at := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	row := Row{
		"e_id":                 int64(1),
		"e_date_time":          at,
		"e_status":             "IN_PROGRESS",
		"e_basket_id":          nil,
		"e_payment_id":         nil,
		"basket_id":            nil,
		"basket_description":   nil,
		"basket_price":         nil,
		"basket_restaurant_id": nil,
		"payment_id":           nil,
		"payment_amount":       nil,
		"payment_payment_type": nil,
	}
	if withBasket {
		row["e_basket_id"] = int64(2)
		row["basket_id"] = int64(2)
		row["basket_description"] = "two pizzas"
		row["basket_price"] = 21.0
		row["basket_restaurant_id"] = int64(9)
	}
	if withPayment {
		row["e_payment_id"] = int64(3)
		row["payment_id"] = int64(3)
		row["payment_amount"] = 21.0
		row["payment_payment_type"] = "VISA"
	}
	return row
}

func TestAssemble_AllAssociations(t *testing.T) {
	s := NewSchema()

	o, err := s.Orders.Assemble(orderRow(true, true))
	require.NoError(t, err)

	require.NotNil(t, o.Basket)
	assert.Equal(t, models.ID(2), o.Basket.ID)
	assert.Equal(t, "two pizzas", *o.Basket.Description)
	assert.Equal(t, models.ID(9), *o.Basket.RestaurantID)
	assert.Nil(t, o.Basket.Restaurant)
	assert.Equal(t, models.ID(2), *o.BasketID)

	require.NotNil(t, o.Payment)
	assert.Equal(t, models.PaymentTypeVisa, o.Payment.PaymentType)
	assert.Equal(t, models.ID(3), *o.PaymentID)
}

func TestAssemble_MissingAssociationStaysUnset(t *testing.T) {
	s := NewSchema()

	o, err := s.Orders.Assemble(orderRow(true, false))
	require.NoError(t, err)

	assert.NotNil(t, o.Basket)
	assert.Nil(t, o.Payment)
	assert.Nil(t, o.PaymentID)
}

func TestAssemble_ColumnOrderDoesNotMatter(t *testing.T) {
	s := NewSchema()

	// a map has no order; decoding must only rely on labels
	row := orderRow(false, true)
	o, err := s.Orders.Assemble(row)
	require.NoError(t, err)
	assert.Nil(t, o.Basket)
	assert.Equal(t, 21.0, o.Payment.Amount)
}

func TestAssemble_Errors(t *testing.T) {
	s := NewSchema()

	_, err := s.Orders.Assemble(Row{"e_id": nil})
	assert.True(t, errors.Is(err, ErrConversion))

	row := orderRow(false, true)
	row["payment_payment_type"] = "CASH"
	_, err = s.Orders.Assemble(row)
	assert.True(t, errors.Is(err, ErrConversion))
}
