// Command smoke runs the basic entity scenarios against a live database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"coopcycle-service/internal/database"
	"coopcycle-service/internal/events"
	"coopcycle-service/internal/models"
	"coopcycle-service/internal/repository"
	"coopcycle-service/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := database.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatal("migrations failed: ", err)
	}

	s := service.NewServices(pool, repository.NewSchema(), events.Nop{})

	testPayment(ctx, s)
	testRestaurantOwnerPatch(ctx, s)
	testOrderGraph(ctx, s)
	testBasketDelete(ctx, s)
}

func ptr[T any](v T) *T { return &v }

func testPayment(ctx context.Context, s *service.Services) {
	fmt.Println("\n=== Testing Payment ===")

	p, err := s.Payments.Create(ctx, &service.PaymentDTO{Amount: ptr(0.0), PaymentType: ptr(models.PaymentTypeCB)})
	if err != nil {
		log.Fatal("create payment failed: ", err)
	}

	got, err := s.Payments.FindOne(ctx, *p.ID)
	if err != nil {
		log.Fatal("get payment failed: ", err)
	}
	if *got.Amount != 0 || *got.PaymentType != models.PaymentTypeCB {
		log.Fatalf("payment %d came back as %v %v", *p.ID, *got.Amount, *got.PaymentType)
	}
	fmt.Printf("payment %d: amount=%.1f type=%s\n", *got.ID, *got.Amount, *got.PaymentType)
}

func testRestaurantOwnerPatch(ctx context.Context, s *service.Services) {
	fmt.Println("\n=== Testing RestaurantOwner PATCH ===")

	o, err := s.RestaurantOwners.Create(ctx, &service.RestaurantOwnerDTO{FirstName: ptr("Anna"), LastName: ptr("Berger")})
	if err != nil {
		log.Fatal("create owner failed: ", err)
	}

	patched, err := s.RestaurantOwners.PartialUpdate(ctx, *o.ID, &service.RestaurantOwnerDTO{ID: o.ID, FirstName: ptr("Xavier")})
	if err != nil {
		log.Fatal("patch owner failed: ", err)
	}
	if *patched.FirstName != "Xavier" || *patched.LastName != "Berger" {
		log.Fatalf("patch produced %s %s", *patched.FirstName, *patched.LastName)
	}
	fmt.Printf("owner %d: %s %s\n", *patched.ID, *patched.FirstName, *patched.LastName)
}

func testOrderGraph(ctx context.Context, s *service.Services) {
	fmt.Println("\n=== Testing Order graph ===")

	r, err := s.Restaurants.Create(ctx, &service.RestaurantDTO{Name: ptr("Chez Max"), Address: ptr("12 rue des Lilas")})
	if err != nil {
		log.Fatal("create restaurant failed: ", err)
	}
	b, err := s.Baskets.Create(ctx, &service.BasketDTO{Price: ptr(18.5), Restaurant: &service.Ref{ID: *r.ID}})
	if err != nil {
		log.Fatal("create basket failed: ", err)
	}

	missing := models.ID(1 << 40)
	_, err = s.Orders.Update(ctx, missing, &service.OrderDTO{ID: &missing, Status: ptr(models.OrderStatusReady), DateTime: ptr(nowUTC())})
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatal("update of a missing order should be not found, got: ", err)
	}

	o, err := s.Orders.Create(ctx, &service.OrderDTO{
		DateTime: ptr(nowUTC()),
		Status:   ptr(models.OrderStatusInProgress),
		Basket:   &service.Ref{ID: *b.ID},
	})
	if err != nil {
		log.Fatal("create order failed: ", err)
	}

	page, err := s.Baskets.FindAll(ctx, nil, repository.Filter{Association: "restaurant", ID: *r.ID})
	if err != nil || page.Total != 1 {
		log.Fatalf("baskets of restaurant %d: total=%v err=%v", *r.ID, page, err)
	}
	fmt.Printf("order %d -> basket %d -> restaurant %d\n", *o.ID, o.Basket.ID, *r.ID)
}

func testBasketDelete(ctx context.Context, s *service.Services) {
	fmt.Println("\n=== Testing Basket DELETE ===")

	b, err := s.Baskets.Create(ctx, &service.BasketDTO{Price: ptr(2.0)})
	if err != nil {
		log.Fatal("create basket failed: ", err)
	}
	if err := s.Baskets.Delete(ctx, *b.ID); err != nil {
		log.Fatal("delete basket failed: ", err)
	}
	if _, err := s.Baskets.FindOne(ctx, *b.ID); !errors.Is(err, repository.ErrNotFound) {
		log.Fatal("deleted basket is still readable: ", err)
	}
	fmt.Printf("basket %d deleted\n", *b.ID)
}

func nowUTC() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
