package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/microservices-console/config"
	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/infrastructure/remote"
	"github.com/oksasatya/microservices-console/pkg/validation"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %s", validation.Summary(err))
	}
	ep := cfg.Endpoints()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := remote.NewUserRepository(remote.NewClient(ep.UserAPI, cfg.RemoteTimeout))
	products := remote.NewProductRepository(remote.NewClient(ep.ProductAPI, cfg.RemoteTimeout))

	if err := users.Create(ctx, entity.NewUser{Name: "demoUser", Email: "demo@example.com"}); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	if err := products.Create(ctx, entity.NewProduct{Name: "Demo Lamp", Description: "Seeded desk lamp", Price: "19.99"}); err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}

	us, err := users.List(ctx)
	if err != nil {
		log.Fatalf("failed to list users: %v", err)
	}
	for _, u := range us {
		fmt.Printf("user: id=%s name=%s email=%s\n", u.ID, u.Name, u.Email)
	}
	ps, err := products.List(ctx)
	if err != nil {
		log.Fatalf("failed to list products: %v", err)
	}
	for _, p := range ps {
		fmt.Printf("product: id=%s name=%s price=%s\n", p.ID, p.Name, p.Price)
	}
}
