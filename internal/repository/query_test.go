package repository

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"coopcycle-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSQL_SingleTable(t *testing.T) {
	s := NewSchema()

	sql, args, err := s.Payments.SelectSQL(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t,
		`SELECT "e"."id" AS "e_id", "e"."amount" AS "e_amount", "e"."payment_type" AS "e_payment_type" FROM "payment" "e"`,
		sql)
}

func TestSelectSQL_JoinsEveryDirectAssociation(t *testing.T) {
	s := NewSchema()
	where := Eq(rootColumn("id"), int64(1))

	sql, args, err := s.Orders.SelectSQL(nil, &where)
	require.NoError(t, err)

	assert.Equal(t, []any{int64(1)}, args)
	assert.Contains(t, sql, `SELECT "e"."id" AS "e_id", "e"."date_time" AS "e_date_time", "e"."status" AS "e_status", "e"."basket_id" AS "e_basket_id", "e"."payment_id" AS "e_payment_id", "basket"."id" AS "basket_id"`)
	assert.Contains(t, sql, `"payment"."payment_type" AS "payment_payment_type"`)
	assert.Contains(t, sql, `FROM "orders" "e" LEFT OUTER JOIN "basket" "basket" ON "e"."basket_id" = "basket"."id" LEFT OUTER JOIN "payment" "payment" ON "e"."payment_id" = "payment"."id"`)
	assert.Contains(t, sql, `WHERE "e"."id" = $1`)
}

func TestSelectSQL_ReservedAliasIsQuoted(t *testing.T) {
	s := NewSchema()

	sql, _, err := s.Clients.SelectSQL(nil, nil)
	require.NoError(t, err)
	assert.Contains(t, sql, `LEFT OUTER JOIN "orders" "order" ON "e"."order_id" = "order"."id"`)
	assert.Contains(t, sql, `"order"."status" AS "order_status"`)
}

func TestSelectSQL_Paging(t *testing.T) {
	s := NewSchema()

	tests := []struct {
		name    string
		page    *Pageable
		want    string
		wantErr error
	}{
		{
			name: "default_order_when_paged",
			page: &Pageable{Page: 2, Size: 20},
			want: `ORDER BY "e"."id" ASC LIMIT 20 OFFSET 40`,
		},
		{
			name: "sort_by_property",
			page: &Pageable{Page: 0, Size: 10, Sort: []Sort{{Property: "lastName", Desc: true}, {Property: "id"}}},
			want: `ORDER BY "e"."last_name" DESC, "e"."id" ASC LIMIT 10 OFFSET 0`,
		},
		{
			name: "unpaged_sort",
			page: &Pageable{Sort: []Sort{{Property: "firstName"}}},
			want: `ORDER BY "e"."first_name" ASC`,
		},
		{
			name:    "unknown_property",
			page:    &Pageable{Size: 10, Sort: []Sort{{Property: "password"}}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "offset_overflow",
			page:    &Pageable{Page: 1 << 62, Size: 20},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative_page",
			page:    &Pageable{Page: -1, Size: 20},
			wantErr: ErrInvalidInput,
		},
		{
			name: "largest_page",
			page: &Pageable{Page: math.MaxInt / 20, Size: 20},
			want: fmt.Sprintf(`LIMIT 20 OFFSET %d`, math.MaxInt/20*20),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql, _, err := s.Shareholders.SelectSQL(tc.page, nil)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, sql, tc.want)
		})
	}
}

func TestFilterCondition(t *testing.T) {
	s := NewSchema()

	where, err := s.Baskets.filterCondition(Filter{Association: "restaurant", ID: 4})
	require.NoError(t, err)
	sql, args, err := s.Baskets.SelectSQL(nil, where)
	require.NoError(t, err)
	assert.Contains(t, sql, `WHERE "e"."restaurant_id" = $1`)
	assert.Equal(t, []any{int64(4)}, args)

	where, err = s.Baskets.filterCondition(Filter{Association: "restaurant", IsNull: true})
	require.NoError(t, err)
	sql, args, err = s.Baskets.SelectSQL(nil, where)
	require.NoError(t, err)
	assert.Contains(t, sql, `WHERE "e"."restaurant_id" IS NULL`)
	assert.Empty(t, args)

	_, err = s.Baskets.filterCondition(Filter{Association: "payment", ID: 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	where, err = s.Baskets.filterCondition(Filter{})
	assert.NoError(t, err)
	assert.Nil(t, where)
}

func TestConditionNesting(t *testing.T) {
	c := And(
		Eq(`"e"."first_name"`, "Ada"),
		Condition{Logic: "OR", Nested: []Condition{IsNull(`"e"."order_id"`), Eq(`"e"."order_id"`, int64(3))}},
	)

	var args []any
	sql := c.toSQL(&args)
	assert.Equal(t, `("e"."first_name" = $1) AND (("e"."order_id" IS NULL) OR ("e"."order_id" = $2))`, sql)
	assert.Equal(t, []any{"Ada", int64(3)}, args)
}

func TestWriteStatements(t *testing.T) {
	s := NewSchema()
	owner := int64(8)

	r := restaurantFixture()
	sql, args := s.Restaurants.insertSQL(r)
	assert.Equal(t, `INSERT INTO "restaurant" ("name", "address", "menu", "restaurant_owner_id") VALUES ($1, $2, $3, $4) RETURNING "id"`, sql)
	assert.Equal(t, []any{"Chez Max", "12 rue des Lilas", nil, owner}, args)

	r.ID = 5
	sql, args = s.Restaurants.updateSQL(r)
	assert.Equal(t, `UPDATE "restaurant" SET "name" = $1, "address" = $2, "menu" = $3, "restaurant_owner_id" = $4 WHERE "id" = $5`, sql)
	assert.Equal(t, []any{"Chez Max", "12 rue des Lilas", nil, owner, int64(5)}, args)

	sql, _ = s.Restaurants.countSQL(nil)
	assert.Equal(t, `SELECT COUNT(*) FROM "restaurant" "e"`, sql)
}

func TestSchemaValidation(t *testing.T) {
	s := NewSchema()
	broken := *s.Baskets
	broken.Relations = append(broken.Relations, HasOne[models.Basket]("restaurant", "restaurant_id", "again", s.Restaurants, nil))
	assert.Error(t, broken.validate())

	noFK := *s.Payments
	noFK.Relations = append(noFK.Relations, HasOne[models.Payment]("basket", "basket_id", "basket", s.Baskets, nil))
	assert.Error(t, noFK.validate())
}
