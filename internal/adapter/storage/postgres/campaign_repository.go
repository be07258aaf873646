package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

type CampaignRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCampaignRepository(db *gorm.DB, log *zap.Logger) ports.CampaignRepository {
	return &CampaignRepository{
		db:  db,
		log: log,
	}
}

func (r *CampaignRepository) Save(ctx context.Context, campaign *domain.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

const schedulerSelect = "campaigns.*, users.first_name AS scheduler_first_name, users.last_name AS scheduler_last_name"

func (r *CampaignRepository) FindAllWithScheduler(ctx context.Context) ([]domain.CampaignSummary, error) {
	var summaries []domain.CampaignSummary
	err := r.db.WithContext(ctx).
		Table("campaigns").
		Select(schedulerSelect).
		Joins("INNER JOIN users ON users.id = campaigns.scheduled_by").
		Order("campaigns.created_at DESC").
		Find(&summaries).Error
	return summaries, err
}

func (r *CampaignRepository) FindByIDWithScheduler(ctx context.Context, id string) (*domain.CampaignSummary, error) {
	var summary domain.CampaignSummary
	err := r.db.WithContext(ctx).
		Table("campaigns").
		Select(schedulerSelect).
		Joins("INNER JOIN users ON users.id = campaigns.scheduled_by").
		Where("campaigns.id = ?", id).
		Take(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

// UpdateStatusIf is a conditional transition guarded by the affected-row
// count. Two concurrent launches of the same campaign cannot both win: the
// loser matches zero rows and reports false.
func (r *CampaignRepository) UpdateStatusIf(ctx context.Context, id string, next domain.CampaignStatus, allowed ...domain.CampaignStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Campaign{}).
		Where("id = ? AND status IN ?", id, allowed).
		Update("status", next)
	return tx.RowsAffected > 0, tx.Error
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Campaign{}).
		Where("id = ?", id).
		Update("status", status)
	return tx.RowsAffected > 0, tx.Error
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&domain.Campaign{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
