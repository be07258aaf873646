package campaign

import (
	"context"

	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/observability/telemetry"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

// Dispatcher fans a campaign out to its resolved recipients over the
// campaign's channel. A failed send is logged and counted, never fatal, so
// one bad address cannot sink the rest of the batch.
type Dispatcher struct {
	emailService ports.EmailService
	smsService   ports.SMSService
	log          *zap.Logger
}

func NewDispatcher(emailService ports.EmailService, smsService ports.SMSService, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		emailService: emailService,
		smsService:   smsService,
		log:          log,
	}
}

// Dispatch sends the campaign to every recipient in order and reports how
// many sends were attempted and how many failed. For IN_APP campaigns the
// ledger row written before dispatch is the delivery itself, so there is
// nothing to send here.
func (d *Dispatcher) Dispatch(ctx context.Context, campaign *domain.Campaign, recipients []domain.Recipient) domain.DispatchSummary {
	summary := domain.DispatchSummary{Channel: campaign.Channel}

	if campaign.Channel == domain.ChannelInApp {
		summary.Attempted = len(recipients)
		return summary
	}

	for _, recipient := range recipients {
		summary.Attempted++

		var err error
		switch campaign.Channel {
		case domain.ChannelEmail:
			err = d.emailService.SendCampaign(ctx, recipient.Email, campaign.Title, campaign.Message)
		case domain.ChannelSMS:
			err = d.smsService.Send(ctx, recipient.Phone, campaign.Message)
		}

		if err != nil {
			summary.Failed++
			telemetry.ChannelSendsTotal.WithLabelValues(string(campaign.Channel), "error").Inc()
			d.log.Warn("Campaign send failed",
				zap.String("campaign_id", campaign.ID),
				zap.String("recipient_id", recipient.ID),
				zap.String("channel", string(campaign.Channel)),
				zap.Error(err),
			)
			continue
		}

		telemetry.ChannelSendsTotal.WithLabelValues(string(campaign.Channel), "ok").Inc()
	}

	return summary
}
