package usecase

import (
	"context"

	"github.com/atvirokodosprendimai/estacionamento/internal/core/domain"
	"github.com/atvirokodosprendimai/estacionamento/internal/core/ports"
)

type VagaService struct {
	repo ports.VagaRepository
}

func NewVagaService(repo ports.VagaRepository) *VagaService {
	return &VagaService{repo: repo}
}

func (s *VagaService) Create(ctx context.Context, vaga domain.Vaga) (domain.Vaga, error) {
	if err := vaga.Validate(); err != nil {
		return domain.Vaga{}, err
	}
	vaga.ID = 0
	return s.repo.Create(ctx, vaga)
}

func (s *VagaService) GetAll(ctx context.Context) ([]domain.Vaga, error) {
	return s.repo.List(ctx)
}

func (s *VagaService) GetByID(ctx context.Context, id int64) (domain.Vaga, error) {
	if !domain.ValidID(id) {
		return domain.Vaga{}, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *VagaService) UpdateByID(ctx context.Context, id int64, vaga domain.Vaga) (domain.Vaga, error) {
	if !domain.ValidID(id) {
		return domain.Vaga{}, domain.ErrNotFound
	}
	if err := vaga.Validate(); err != nil {
		return domain.Vaga{}, err
	}
	vaga.ID = id
	return s.repo.Update(ctx, id, vaga)
}

func (s *VagaService) DeleteByID(ctx context.Context, id int64) (domain.Vaga, error) {
	if !domain.ValidID(id) {
		return domain.Vaga{}, domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
