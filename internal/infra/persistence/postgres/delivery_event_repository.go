package postgres

import (
	"context"

	"wasul/internal/domain/entity"
	domainerrors "wasul/internal/domain/errors"
	"wasul/internal/domain/repository"
	"wasul/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deliveryEventRepository implements the repository.DeliveryEventRepository interface.
type deliveryEventRepository struct {
	db *gorm.DB
}

// NewDeliveryEventRepository is the constructor for deliveryEventRepository.
func NewDeliveryEventRepository(db *gorm.DB) repository.DeliveryEventRepository {
	return &deliveryEventRepository{
		db: db,
	}
}

// Append persists a reported delivery outcome.
func (repo *deliveryEventRepository) Append(ctx context.Context, event *entity.DeliveryEvent) error {
	eventM := fromDeliveryEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append delivery event")
	}

	event.ID = eventM.ID

	return nil
}

// CountSuccessful returns the number of successful delivery reports.
func (repo *deliveryEventRepository) CountSuccessful(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.DeliveryEventModel{}).
		Where("success = ?", true).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count successful deliveries")
	}

	return count, nil
}

// --- Mapper Functions ---

// fromDeliveryEventDomain converts a domain DeliveryEvent entity to a GORM DeliveryEventModel.
func fromDeliveryEventDomain(data *entity.DeliveryEvent) *model.DeliveryEventModel {
	if data == nil {
		return nil
	}

	return &model.DeliveryEventModel{
		ID:          data.ID,
		AddressCode: data.AddressCode,
		PartnerName: data.PartnerName,
		Success:     data.Success,
		Feedback:    data.Feedback,
		DeliveredAt: data.DeliveredAt,
	}
}
