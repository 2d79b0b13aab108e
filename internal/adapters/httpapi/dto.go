package httpapi

import (
	"errors"

	"github.com/atvirokodosprendimai/estacionamento/internal/core/domain"
)

// VagaDTO is the inbound representation of a vaga on POST and PUT.
type VagaDTO struct {
	Number   *int  `json:"number"`
	Floor    *int  `json:"floor"`
	Occupied *bool `json:"occupied,omitempty"`
}

// VagaMapper turns a VagaDTO into the domain model.
type VagaMapper interface {
	ToVagaModel(dto VagaDTO) (domain.Vaga, error)
}

type vagaMapper struct{}

func NewVagaMapper() VagaMapper {
	return vagaMapper{}
}

func (vagaMapper) ToVagaModel(dto VagaDTO) (domain.Vaga, error) {
	if dto.Number == nil {
		return domain.Vaga{}, errors.New("number is required")
	}
	if dto.Floor == nil {
		return domain.Vaga{}, errors.New("floor is required")
	}
	vaga := domain.Vaga{Number: *dto.Number, Floor: *dto.Floor}
	if dto.Occupied != nil {
		vaga.Occupied = *dto.Occupied
	}
	return vaga, nil
}

type vagaResponse struct {
	ID        int64  `json:"id"`
	Number    int    `json:"number"`
	Floor     int    `json:"floor"`
	Occupied  bool   `json:"occupied"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toVagaResponse(v domain.Vaga) vagaResponse {
	return vagaResponse{
		ID:        v.ID,
		Number:    v.Number,
		Floor:     v.Floor,
		Occupied:  v.Occupied,
		CreatedAt: v.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt: v.UpdatedAt.UTC().Format(timeFormat),
	}
}

func toVagaResponses(vagas []domain.Vaga) []vagaResponse {
	result := make([]vagaResponse, 0, len(vagas))
	for _, v := range vagas {
		result = append(result, toVagaResponse(v))
	}
	return result
}
