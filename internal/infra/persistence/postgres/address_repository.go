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

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// Create persists a new address record. The unique indexes on code and
// phone are the authoritative uniqueness check; concurrent registrations
// racing on the same code or phone serialize on them.
func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			if violatedConstraint(err, "idx_addresses_phone") {
				return repository.ErrPhoneAlreadyRegistered
			}

			return repository.ErrCodeAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	// Update the entity with generated values
	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindByPhone retrieves an address by its normalized phone number.
func (repo *addressRepository) FindByPhone(ctx context.Context, phone string) (*entity.Address, error) {
	var addressM model.AddressModel

	if err := repo.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by phone")
	}

	return toAddressDomain(&addressM), nil
}

// FindByCode retrieves an address by its address code.
func (repo *addressRepository) FindByCode(ctx context.Context, code string) (*entity.Address, error) {
	var addressM model.AddressModel

	if err := repo.db.WithContext(ctx).
		Where("code = ?", code).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by code")
	}

	return toAddressDomain(&addressM), nil
}

// RecordDeliveryOutcome increments the outcome counter and recomputes the
// verified flag in a single UPDATE, so concurrent reports for the same
// code never lose increments. The CASE expression reads the pre-update
// counter, so the flag flips exactly when the new value reaches the
// threshold and never reverts.
func (repo *addressRepository) RecordDeliveryOutcome(ctx context.Context, code string, success bool, successThreshold int) (*entity.Address, error) {
	var updates map[string]any
	if success {
		updates = map[string]any{
			"successful_deliveries": gorm.Expr("successful_deliveries + 1"),
			"verified":              gorm.Expr("CASE WHEN successful_deliveries + 1 >= ? THEN TRUE ELSE verified END", successThreshold),
		}
	} else {
		updates = map[string]any{
			"failed_deliveries": gorm.Expr("failed_deliveries + 1"),
		}
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("code = ?", code).
		Updates(updates)

	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to record delivery outcome")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrAddressNotFound
	}

	return repo.FindByCode(ctx, code)
}

// CountAddresses returns the total number of registered addresses.
func (repo *addressRepository) CountAddresses(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count addresses")
	}

	return count, nil
}

// CountVerified returns the number of verified addresses.
func (repo *addressRepository) CountVerified(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("verified = ?", true).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count verified addresses")
	}

	return count, nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:                   data.ID,
		Code:                 data.Code,
		Phone:                data.Phone,
		Latitude:             data.Latitude,
		Longitude:            data.Longitude,
		City:                 data.City,
		Area:                 data.Area,
		POBox:                data.POBox,
		DeliveryNotes:        data.DeliveryNotes,
		SuccessfulDeliveries: data.SuccessfulDeliveries,
		FailedDeliveries:     data.FailedDeliveries,
		Verified:             data.Verified,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:                   data.ID,
		Code:                 data.Code,
		Phone:                data.Phone,
		Latitude:             data.Latitude,
		Longitude:            data.Longitude,
		City:                 data.City,
		Area:                 data.Area,
		POBox:                data.POBox,
		DeliveryNotes:        data.DeliveryNotes,
		SuccessfulDeliveries: data.SuccessfulDeliveries,
		FailedDeliveries:     data.FailedDeliveries,
		Verified:             data.Verified,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}
