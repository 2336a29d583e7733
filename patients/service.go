package patients

import (
	"context"

	"github.com/medportal-org/portal/store"
)

type service struct {
	repo Repository
}

var _ Service = &service{}

func NewService(repo Repository) (Service, error) {
	return &service{
		repo: repo,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error) {
	return s.repo.List(ctx, filter, pagination)
}

func (s *service) Create(ctx context.Context, patient Patient) (*Patient, error) {
	return s.repo.Create(ctx, patient)
}
