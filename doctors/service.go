package doctors

import (
	"context"

	"github.com/medportal-org/portal/store"
)

type service struct {
	repo Repository
}

var _ Service = &service{}

func NewService(repo Repository) (Service, error) {
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, pagination store.Pagination) ([]*Doctor, error) {
	return s.repo.List(ctx, pagination)
}
