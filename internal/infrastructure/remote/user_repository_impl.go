package remote

import (
	"context"
	"net/url"

	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/domain/repository"
)

type UserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.client.GetJSON(ctx, "", &users); err != nil {
		return nil, err
	}
	if users == nil {
		// a JSON null body is treated like an empty list
		users = []entity.User{}
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, u entity.NewUser) error {
	return r.client.PostJSON(ctx, "", u)
}

func (r *UserRepository) Delete(ctx context.Context, id entity.ID) error {
	return r.client.Delete(ctx, url.PathEscape(id.String()))
}

var _ repository.UserRepository = (*UserRepository)(nil)
