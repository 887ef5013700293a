package repository

import (
	"context"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
)

// UserRepository is the user-service collection endpoint.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, u entity.NewUser) error
	Delete(ctx context.Context, id entity.ID) error
}

// ProductRepository is the product-service collection endpoint.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	Create(ctx context.Context, p entity.NewProduct) error
	Delete(ctx context.Context, id entity.ID) error
}

// HealthProbe reports nil when the service answers its health endpoint with a 2xx.
type HealthProbe interface {
	Probe(ctx context.Context) error
}
