package remote

import (
	"context"
	"net/url"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/domain/repository"
)

type ProductRepository struct {
	client *Client
}

func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.client.GetJSON(ctx, "", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, p entity.NewProduct) error {
	return r.client.PostJSON(ctx, "", p)
}

func (r *ProductRepository) Delete(ctx context.Context, id entity.ID) error {
	return r.client.Delete(ctx, url.PathEscape(id.String()))
}

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.HealthProbe       = (*Client)(nil)
)
