package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

type UserRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserRepository(db *gorm.DB, log *zap.Logger) ports.UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
	}
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenDigest string) (*domain.User, error) {
	return r.findOne(ctx, "password_reset_token = ? AND password_reset_expires > ?", tokenDigest, time.Now())
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, append([]interface{}{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("inscription_date DESC").Find(&users).Error
	return users, err
}

// FindRecipients translates the typed criteria into one conjunctive query.
// The role = Client constraint is always applied; every further condition is
// ANDed, so naming two contract types yields an empty set. No ORDER BY: the
// recipient order is whatever the store returns.
func (r *UserRepository) FindRecipients(ctx context.Context, criteria domain.Criteria) ([]domain.Recipient, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("role = ?", domain.UserRoleClient)

	if criteria.NewClients {
		q = q.Where("inscription_date >= ?", time.Now().Add(-domain.NewClientWindow))
	}
	for _, ct := range criteria.ContractTypes {
		q = q.Where("contract_type = ?", ct)
	}
	if len(criteria.Cities) > 0 {
		q = q.Where("city IN ?", criteria.Cities)
	}

	var recipients []domain.Recipient
	err := q.Select("id", "first_name", "last_name", "email", "phone").Find(&recipients).Error
	return recipients, err
}

func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields)
	return tx.RowsAffected > 0, tx.Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
