package ports

import (
	"context"

	"github.com/atvirokodosprendimai/estacionamento/internal/core/domain"
)

// VagaRepository persists vagas. Get, Update and Delete return domain.ErrNotFound
// when no vaga has the given id.
type VagaRepository interface {
	Create(ctx context.Context, vaga domain.Vaga) (domain.Vaga, error)
	List(ctx context.Context) ([]domain.Vaga, error)
	Get(ctx context.Context, id int64) (domain.Vaga, error)
	Update(ctx context.Context, id int64, vaga domain.Vaga) (domain.Vaga, error)
	Delete(ctx context.Context, id int64) (domain.Vaga, error)
}
