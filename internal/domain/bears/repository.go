package bears

import "context"

type Repository interface {
	ListAll(ctx context.Context) ([]Bear, error)
	GetByID(ctx context.Context, id string) (Bear, error)
	Create(ctx context.Context, b Bear) error
}
