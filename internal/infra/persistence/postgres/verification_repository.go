// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"eats/internal/domain/entity"
	domainerrors "eats/internal/domain/errors"
	"eats/internal/domain/repository"
	"eats/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// verificationRepository implements the domain.VerificationRepository interface using GORM.
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository is the constructor for verificationRepository.
func NewVerificationRepository(db *gorm.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

// FindByCode retrieves a verification by its one-time code, optionally
// preloading the owning account.
func (repo *verificationRepository) FindByCode(ctx context.Context, code string, withAccount bool) (*entity.Verification, error) {
	query := repo.db.WithContext(ctx)
	if withAccount {
		query = query.Preload("Account")
	}

	var verificationM model.VerificationModel
	err := query.Where("code = ?", code).First(&verificationM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find verification by code")
	}

	return toVerificationDomain(&verificationM), nil
}

// Create persists a new verification record.
func (repo *verificationRepository) Create(ctx context.Context, verification *entity.Verification) error {
	verificationM := fromVerificationDomain(verification)

	if err := repo.db.WithContext(ctx).Create(verificationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("a pending verification already exists for this account")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("invalid account reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create verification")
	}

	verification.ID = verificationM.ID
	verification.CreatedAt = verificationM.CreatedAt

	return nil
}

// DeleteByID removes a single verification, consuming its code.
func (repo *verificationRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.VerificationModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete verification")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVerificationNotFound
	}

	return nil
}

// DeleteByAccountID removes any pending verification owned by the account.
// Deleting nothing is fine; a fresh account may not have a pending code.
func (repo *verificationRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.VerificationModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete verification by account")
	}

	return nil
}

// --- Mapper Functions ---

// toVerificationDomain converts a GORM VerificationModel to a domain Verification entity.
func toVerificationDomain(data *model.VerificationModel) *entity.Verification {
	if data == nil {
		return nil
	}

	return &entity.Verification{
		ID:        data.ID,
		Code:      data.Code,
		AccountID: data.AccountID,
		Account:   toAccountDomain(data.Account),
		CreatedAt: data.CreatedAt,
	}
}

// fromVerificationDomain converts a domain Verification entity to a GORM VerificationModel.
func fromVerificationDomain(data *entity.Verification) *model.VerificationModel {
	if data == nil {
		return nil
	}

	return &model.VerificationModel{
		ID:        data.ID,
		Code:      data.Code,
		AccountID: data.AccountID,
		CreatedAt: data.CreatedAt,
	}
}
