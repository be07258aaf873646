package ports

import (
	"context"
	"time"

	"github.com/bna-assurances/campaignhub/internal/domain"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// ResetMethod selects the forgot-password flow.
type ResetMethod string

const (
	ResetByEmail ResetMethod = "email"
	ResetByPhone ResetMethod = "phone"
)

type AuthService interface {
	Register(ctx context.Context, user *domain.User) error
	// Login returns a signed access token and the sanitized user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the given access token until its natural expiry.
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	// ForgotPassword starts a reset flow. It reports success even when the
	// identifier matches no account, to avoid account probing.
	ForgotPassword(ctx context.Context, method ResetMethod, identifier string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ResetPasswordWithCode(ctx context.Context, phone, code, newPassword string) error
}

type UserService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	CompleteProfile(ctx context.Context, userID string, contractType domain.ContractType, status, city string) error
	List(ctx context.Context) ([]domain.User, error)
	AdminUpdate(ctx context.Context, id string, fields map[string]interface{}) (*domain.User, error)
	AdminDelete(ctx context.Context, callerID, id string) error
}

// RecipientPreview is the read-only result of recipient resolution, shared
// by the preview endpoint and the launch path.
type RecipientPreview struct {
	Campaign   *domain.Campaign
	Recipients []domain.Recipient
}

// LaunchResult reports the outcome of a campaign launch.
type LaunchResult struct {
	NewStatus      domain.CampaignStatus  `json:"newStatus"`
	RecipientCount int                    `json:"recipientCount"`
	Recipients     []domain.Recipient     `json:"recipients"`
	Dispatch       domain.DispatchSummary `json:"dispatch"`
}

type CampaignService interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	List(ctx context.Context) ([]domain.CampaignSummary, error)
	Get(ctx context.Context, id string) (*domain.CampaignSummary, error)
	Update(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	Delete(ctx context.Context, id string, force bool) error
	// Moderate applies an admin approval decision (APPROVED or REJECTED).
	Moderate(ctx context.Context, id string, status domain.CampaignStatus) error
	ResolveRecipients(ctx context.Context, campaignID string) (*RecipientPreview, error)
	Launch(ctx context.Context, campaignID string) (*LaunchResult, error)
}

type NotificationService interface {
	RecordRecipients(ctx context.Context, campaignID string, channel domain.Channel, recipients []domain.Recipient) error
	History(ctx context.Context, userID string) ([]domain.NotificationEntry, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
	MarkRead(ctx context.Context, userID, campaignID string) error
}

// EmailService delivers transactional and campaign mail.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
	// SendCampaign renders the fixed corporate template around the campaign
	// title and message and sends it.
	SendCampaign(ctx context.Context, to, title, message string) error
	SendPasswordReset(ctx context.Context, to, firstName, resetURL string) error
}

// SMSService sends a single text message.
type SMSService interface {
	Send(ctx context.Context, to, body string) error
}

// NotificationPusher delivers best-effort real-time payloads to connected
// clients of a given user. Implemented by the websocket hub.
type NotificationPusher interface {
	PushToUser(userID string, payload []byte)
}
