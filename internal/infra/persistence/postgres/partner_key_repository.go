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

// partnerKeyRepository implements the repository.PartnerKeyRepository interface.
type partnerKeyRepository struct {
	db *gorm.DB
}

// NewPartnerKeyRepository is the constructor for partnerKeyRepository.
func NewPartnerKeyRepository(db *gorm.DB) repository.PartnerKeyRepository {
	return &partnerKeyRepository{
		db: db,
	}
}

// Create persists a newly issued partner key.
func (repo *partnerKeyRepository) Create(ctx context.Context, key *entity.PartnerKey) error {
	keyM := fromPartnerKeyDomain(key)

	if err := repo.db.WithContext(ctx).Create(keyM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrKeyAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required key information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create partner key")
	}

	// Update the entity with generated values
	key.ID = keyM.ID
	key.CreatedAt = keyM.CreatedAt

	return nil
}

// FindByKey retrieves a partner key by its token.
func (repo *partnerKeyRepository) FindByKey(ctx context.Context, key string) (*entity.PartnerKey, error) {
	var keyM model.PartnerKeyModel

	if err := repo.db.WithContext(ctx).
		Where("key = ?", key).
		First(&keyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.Wrap(err, "failed to find partner key")
	}

	return toPartnerKeyDomain(&keyM), nil
}

// IncrementUsage atomically increments the usage counter of the key.
func (repo *partnerKeyRepository) IncrementUsage(ctx context.Context, key string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PartnerKeyModel{}).
		Where("key = ?", key).
		Update("usage_count", gorm.Expr("usage_count + 1"))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment key usage")
	}
	if result.RowsAffected == 0 {
		return repository.ErrKeyNotFound
	}

	return nil
}

// CountActive returns the number of active partner keys.
func (repo *partnerKeyRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.PartnerKeyModel{}).
		Where("active = ?", true).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active partner keys")
	}

	return count, nil
}

// TotalUsage returns the sum of usage counters across all keys.
func (repo *partnerKeyRepository) TotalUsage(ctx context.Context) (int64, error) {
	var total int64

	if err := repo.db.WithContext(ctx).
		Model(&model.PartnerKeyModel{}).
		Select("COALESCE(SUM(usage_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum key usage")
	}

	return total, nil
}

// --- Mapper Functions ---

// toPartnerKeyDomain converts a GORM PartnerKeyModel to a domain PartnerKey entity.
func toPartnerKeyDomain(data *model.PartnerKeyModel) *entity.PartnerKey {
	if data == nil {
		return nil
	}

	return &entity.PartnerKey{
		ID:          data.ID,
		Key:         data.Key,
		PartnerName: data.PartnerName,
		UsageCount:  data.UsageCount,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
	}
}

// fromPartnerKeyDomain converts a domain PartnerKey entity to a GORM PartnerKeyModel.
func fromPartnerKeyDomain(data *entity.PartnerKey) *model.PartnerKeyModel {
	if data == nil {
		return nil
	}

	return &model.PartnerKeyModel{
		ID:          data.ID,
		Key:         data.Key,
		PartnerName: data.PartnerName,
		UsageCount:  data.UsageCount,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
	}
}
