package repository

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"coopcycle-service/internal/models"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restaurantFixture() *models.Restaurant {
	owner := models.ID(8)
	return &models.Restaurant{
		Name:              "Chez Max",
		Address:           "12 rue des Lilas",
		RestaurantOwnerID: &owner,
	}
}

func TestDecode_Coercions(t *testing.T) {
	s := NewSchema()

	row := Row{
		"e_id":         "12",
		"e_date_time":  "2024-03-01T10:15:00+01:00",
		"e_status":     "READY",
		"e_basket_id":  int32(4),
		"e_payment_id": nil,
	}

	o, ok, err := s.Orders.Decode(row, RootAlias)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, models.ID(12), o.ID)
	assert.Equal(t, models.OrderStatusReady, o.Status)
	assert.True(t, o.DateTime.Equal(time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)))
	if assert.NotNil(t, o.BasketID) {
		assert.Equal(t, models.ID(4), *o.BasketID)
	}
	assert.Nil(t, o.PaymentID)
}

func TestDecode_Numeric(t *testing.T) {
	s := NewSchema()

	row := Row{
		"e_id":           int64(1),
		"e_amount":       pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true},
		"e_payment_type": "PAYPAL",
	}

	p, ok, err := s.Payments.Decode(row, RootAlias)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 12.5, p.Amount, 1e-9)
	assert.Equal(t, models.PaymentTypePaypal, p.PaymentType)
}

func TestDecode_NullIDSkipsGroup(t *testing.T) {
	s := NewSchema()

	p, ok, err := s.Payments.Decode(Row{"payment_id": nil, "payment_amount": nil, "payment_payment_type": nil}, "payment")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)

	p, ok, err = s.Payments.Decode(Row{}, "payment")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestDecode_ConversionErrors(t *testing.T) {
	s := NewSchema()

	tests := []struct {
		name string
		row  Row
	}{
		{
			name: "unknown_enum",
			row:  Row{"e_id": int64(1), "e_amount": 1.0, "e_payment_type": "cb"},
		},
		{
			name: "bad_number",
			row:  Row{"e_id": int64(1), "e_amount": "lots", "e_payment_type": "CB"},
		},
		{
			name: "missing_column",
			row:  Row{"e_id": int64(1), "e_amount": 1.0},
		},
		{
			name: "bad_id",
			row:  Row{"e_id": true, "e_amount": 1.0, "e_payment_type": "CB"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := s.Payments.Decode(tc.row, RootAlias)
			assert.True(t, errors.Is(err, ErrConversion), "got %v", err)
		})
	}
}

func TestDecode_BadTimestamp(t *testing.T) {
	s := NewSchema()

	_, _, err := s.Orders.Decode(Row{
		"e_id":         int64(1),
		"e_date_time":  "yesterday",
		"e_status":     "READY",
		"e_basket_id":  nil,
		"e_payment_id": nil,
	}, RootAlias)
	assert.True(t, errors.Is(err, ErrConversion))
}
