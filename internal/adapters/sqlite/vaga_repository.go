package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/atvirokodosprendimai/estacionamento/internal/adapters/sqlite/gormsqlite"
	"github.com/atvirokodosprendimai/estacionamento/internal/core/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type vagaModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Number    int       `gorm:"column:number;not null"`
	Floor     int       `gorm:"column:floor;not null"`
	Occupied  bool      `gorm:"column:occupied;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (vagaModel) TableName() string {
	return "vagas"
}

// VagaRepository stores vagas and appends a change event to the outbox in the
// same write transaction as every mutation.
type VagaRepository struct {
	db *gormsqlite.DB
}

func NewVagaRepository(db *gormsqlite.DB) *VagaRepository {
	return &VagaRepository{db: db}
}

func (r *VagaRepository) Create(ctx context.Context, vaga domain.Vaga) (domain.Vaga, error) {
	var result domain.Vaga

	err := r.db.WriteTX(ctx, func(tx *gormsqlite.Tx) error {
		if err := ensureUniqueSpot(tx.DB, vaga.Floor, vaga.Number, 0); err != nil {
			return err
		}

		now := time.Now().UTC()
		model := vagaModel{
			Number:    vaga.Number,
			Floor:     vaga.Floor,
			Occupied:  vaga.Occupied,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("insert vaga: %w", err)
		}

		result = toDomainVaga(model)
		return appendOutbox(tx.DB, domain.EventVagaCreated, result, now)
	})
	if err != nil {
		return domain.Vaga{}, err
	}

	return result, nil
}

func (r *VagaRepository) List(ctx context.Context) ([]domain.Vaga, error) {
	var models []vagaModel
	err := r.db.ReadTX(ctx, func(tx *gormsqlite.Tx) error {
		return tx.Order("id ASC").Find(&models).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list vagas: %w", err)
	}

	result := make([]domain.Vaga, 0, len(models))
	for _, model := range models {
		result = append(result, toDomainVaga(model))
	}
	return result, nil
}

func (r *VagaRepository) Get(ctx context.Context, id int64) (domain.Vaga, error) {
	var model vagaModel
	err := r.db.ReadTX(ctx, func(tx *gormsqlite.Tx) error {
		return tx.Where("id = ?", id).First(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Vaga{}, domain.ErrNotFound
		}
		return domain.Vaga{}, fmt.Errorf("get vaga: %w", err)
	}

	return toDomainVaga(model), nil
}

func (r *VagaRepository) Update(ctx context.Context, id int64, vaga domain.Vaga) (domain.Vaga, error) {
	var result domain.Vaga

	err := r.db.WriteTX(ctx, func(tx *gormsqlite.Tx) error {
		var existing vagaModel
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("load vaga before update: %w", err)
		}

		if err := ensureUniqueSpot(tx.DB, vaga.Floor, vaga.Number, id); err != nil {
			return err
		}

		now := time.Now().UTC()
		// A map keeps zero values such as occupied=false in the update.
		err := tx.Model(&vagaModel{}).Where("id = ?", id).Updates(map[string]any{
			"number":     vaga.Number,
			"floor":      vaga.Floor,
			"occupied":   vaga.Occupied,
			"updated_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("update vaga: %w", err)
		}

		var after vagaModel
		if err := tx.Where("id = ?", id).First(&after).Error; err != nil {
			return fmt.Errorf("load updated vaga: %w", err)
		}

		result = toDomainVaga(after)
		return appendOutbox(tx.DB, domain.EventVagaUpdated, result, now)
	})
	if err != nil {
		return domain.Vaga{}, err
	}

	return result, nil
}

func (r *VagaRepository) Delete(ctx context.Context, id int64) (domain.Vaga, error) {
	var result domain.Vaga

	err := r.db.WriteTX(ctx, func(tx *gormsqlite.Tx) error {
		var before vagaModel
		if err := tx.Where("id = ?", id).First(&before).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("load vaga before delete: %w", err)
		}

		if err := tx.Where("id = ?", id).Delete(&vagaModel{}).Error; err != nil {
			return fmt.Errorf("delete vaga: %w", err)
		}

		result = toDomainVaga(before)
		return appendOutbox(tx.DB, domain.EventVagaDeleted, result, time.Now().UTC())
	})
	if err != nil {
		return domain.Vaga{}, err
	}

	return result, nil
}

// ensureUniqueSpot fails with domain.ErrDuplicateVaga when another vaga (other
// than exceptID) already uses floor and number.
func ensureUniqueSpot(tx *gorm.DB, floor, number int, exceptID int64) error {
	var count int64
	query := tx.Model(&vagaModel{}).Where("floor = ? AND number = ?", floor, number)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check duplicate vaga: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: floor %d number %d", domain.ErrDuplicateVaga, floor, number)
	}
	return nil
}

func appendOutbox(tx *gorm.DB, eventType string, vaga domain.Vaga, at time.Time) error {
	envelope := domain.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		SchemaVersion: domain.CurrentEventSchemaVersion,
		AggregateType: domain.AggregateTypeVaga,
		AggregateID:   strconv.FormatInt(vaga.ID, 10),
		OccurredAt:    at,
		Payload: mustJSON(map[string]any{
			"id":       vaga.ID,
			"number":   vaga.Number,
			"floor":    vaga.Floor,
			"occupied": vaga.Occupied,
		}),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	outbox := outboxEventModel{
		EventID:       envelope.EventID,
		Topic:         domain.Topic(eventType),
		PayloadJSON:   string(payload),
		Status:        domain.OutboxStatusPending,
		NextAttemptAt: at,
		CreatedAt:     at,
	}
	if err := tx.Create(&outbox).Error; err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func toDomainVaga(model vagaModel) domain.Vaga {
	return domain.Vaga{
		ID:        model.ID,
		Number:    model.Number,
		Floor:     model.Floor,
		Occupied:  model.Occupied,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
