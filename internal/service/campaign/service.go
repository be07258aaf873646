package campaign

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/adapter/queue"
	"github.com/bna-assurances/campaignhub/internal/apperrors"
	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/observability/telemetry"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

type Service struct {
	campaignRepo  ports.CampaignRepository
	userRepo      ports.UserRepository
	notifications ports.NotificationService
	dispatcher    *Dispatcher
	queue         queue.MessageQueue
	log           *zap.Logger
}

func NewService(
	campaignRepo ports.CampaignRepository,
	userRepo ports.UserRepository,
	notifications ports.NotificationService,
	dispatcher *Dispatcher,
	mq queue.MessageQueue,
	log *zap.Logger,
) ports.CampaignService {
	return &Service{
		campaignRepo:  campaignRepo,
		userRepo:      userRepo,
		notifications: notifications,
		dispatcher:    dispatcher,
		queue:         mq,
		log:           log,
	}
}

func (s *Service) Create(ctx context.Context, campaign *domain.Campaign) error {
	if campaign.Title == "" || campaign.Message == "" {
		return apperrors.NewValidation("title and message are required")
	}
	if !campaign.Channel.Valid() {
		return apperrors.NewValidation("unknown channel: %s", campaign.Channel)
	}

	if campaign.ID == "" {
		campaign.ID = uuid.NewString()
	}
	campaign.Status = domain.CampaignPending
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return err
	}

	s.log.Info("Campaign created",
		zap.String("campaign_id", campaign.ID),
		zap.String("channel", string(campaign.Channel)),
		zap.String("scheduled_by", campaign.ScheduledBy),
	)
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.CampaignSummary, error) {
	return s.campaignRepo.FindAllWithScheduler(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.CampaignSummary, error) {
	summary, err := s.campaignRepo.FindByIDWithScheduler(ctx, id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperrors.NewNotFound("campaign", id)
	}
	return summary, nil
}

func (s *Service) Update(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	existing, err := s.campaignRepo.FindByID(ctx, campaign.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFound("campaign", campaign.ID)
	}
	if !existing.Status.Mutable() {
		return nil, apperrors.NewInvalidState("update", string(existing.Status))
	}

	if campaign.Title != "" {
		existing.Title = campaign.Title
	}
	if campaign.Message != "" {
		existing.Message = campaign.Message
	}
	if campaign.Channel != "" {
		if !campaign.Channel.Valid() {
			return nil, apperrors.NewValidation("unknown channel: %s", campaign.Channel)
		}
		existing.Channel = campaign.Channel
	}
	if campaign.SelectionCriteria != "" {
		existing.SelectionCriteria = campaign.SelectionCriteria
	}
	existing.UpdatedAt = time.Now()

	if err := s.campaignRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a campaign. Dispatched campaigns keep their ledger and are
// only removable with force, an admin-only escape hatch.
func (s *Service) Delete(ctx context.Context, id string, force bool) error {
	existing, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NewNotFound("campaign", id)
	}
	if !force && !existing.Status.Mutable() {
		return apperrors.NewInvalidState("delete", string(existing.Status))
	}

	deleted, err := s.campaignRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("campaign", id)
	}

	s.log.Info("Campaign deleted", zap.String("campaign_id", id), zap.Bool("force", force))
	return nil
}

func (s *Service) Moderate(ctx context.Context, id string, status domain.CampaignStatus) error {
	if status != domain.CampaignApproved && status != domain.CampaignRejected {
		return apperrors.NewValidation("moderation status must be APPROVED or REJECTED")
	}

	claimed, err := s.campaignRepo.UpdateStatusIf(ctx, id, status, domain.CampaignPending)
	if err != nil {
		return err
	}
	if !claimed {
		existing, err := s.campaignRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.NewNotFound("campaign", id)
		}
		return apperrors.NewInvalidState("moderate", string(existing.Status))
	}

	s.publishEvent(queue.SubjectCampaignModerated, id, status, 0)
	s.log.Info("Campaign moderated",
		zap.String("campaign_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

// ResolveRecipients previews the audience a launch would target, without
// touching campaign state.
func (s *Service) ResolveRecipients(ctx context.Context, campaignID string) (*ports.RecipientPreview, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign", campaignID)
	}

	criteria := domain.ParseCriteria(campaign.SelectionCriteria)
	recipients, err := s.userRepo.FindRecipients(ctx, criteria)
	if err != nil {
		return nil, err
	}

	return &ports.RecipientPreview{Campaign: campaign, Recipients: recipients}, nil
}

// Launch resolves the audience, claims the status transition, writes the
// notification ledger and fans the campaign out over its channel. The
// conditional transition is the guard against two concurrent launches of the
// same campaign: only one caller wins the claim, the other gets a conflict.
func (s *Service) Launch(ctx context.Context, campaignID string) (*ports.LaunchResult, error) {
	started := time.Now()

	preview, err := s.ResolveRecipients(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	campaign := preview.Campaign

	if !campaign.Status.Launchable() {
		return nil, apperrors.NewInvalidState("launch", string(campaign.Status))
	}

	if len(preview.Recipients) == 0 {
		claimed, err := s.campaignRepo.UpdateStatusIf(ctx, campaignID, domain.CampaignEmpty,
			domain.CampaignPending, domain.CampaignApproved)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, apperrors.NewInvalidState("launch", string(campaign.Status))
		}

		telemetry.CampaignsLaunchedTotal.WithLabelValues(string(domain.CampaignEmpty)).Inc()
		s.publishEvent(queue.SubjectCampaignLaunched, campaignID, domain.CampaignEmpty, 0)
		s.log.Info("Campaign launched with no matching recipients", zap.String("campaign_id", campaignID))

		return &ports.LaunchResult{
			NewStatus:      domain.CampaignEmpty,
			RecipientCount: 0,
			Recipients:     []domain.Recipient{},
			Dispatch:       domain.DispatchSummary{Channel: campaign.Channel},
		}, nil
	}

	// Claim the transition before touching the ledger. A concurrent launcher
	// loses here and gets a conflict instead of tripping over the unique
	// (user, campaign) ledger index mid-insert. With at least one recipient
	// the destined status is SENT no matter how many sends fail, so claiming
	// up front is safe.
	claimed, err := s.campaignRepo.UpdateStatusIf(ctx, campaignID, domain.CampaignSent,
		domain.CampaignPending, domain.CampaignApproved)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperrors.NewInvalidState("launch", string(campaign.Status))
	}

	if err := s.notifications.RecordRecipients(ctx, campaignID, campaign.Channel, preview.Recipients); err != nil {
		return nil, err
	}

	dispatch := s.dispatcher.Dispatch(ctx, campaign, preview.Recipients)

	telemetry.CampaignsLaunchedTotal.WithLabelValues(string(domain.CampaignSent)).Inc()
	telemetry.DispatchDuration.Observe(time.Since(started).Seconds())
	s.publishEvent(queue.SubjectCampaignLaunched, campaignID, domain.CampaignSent, len(preview.Recipients))

	s.log.Info("Campaign launched",
		zap.String("campaign_id", campaignID),
		zap.String("channel", string(campaign.Channel)),
		zap.Int("recipients", dispatch.Attempted),
		zap.Int("failed", dispatch.Failed),
	)

	return &ports.LaunchResult{
		NewStatus:      domain.CampaignSent,
		RecipientCount: len(preview.Recipients),
		Recipients:     preview.Recipients,
		Dispatch:       dispatch,
	}, nil
}

// publishEvent emits a lifecycle event, best-effort. A broker outage never
// fails the request that triggered the event.
func (s *Service) publishEvent(subject, campaignID string, status domain.CampaignStatus, recipients int) {
	if s.queue == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"campaign_id": campaignID,
		"status":      status,
		"recipients":  recipients,
		"at":          time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := s.queue.Publish(subject, payload); err != nil {
		s.log.Warn("Failed to publish campaign event",
			zap.String("subject", subject),
			zap.String("campaign_id", campaignID),
			zap.Error(err),
		)
	}
}
