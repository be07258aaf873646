package queue

// MessageQueue defines the interface for a message queue adapter. Campaign
// lifecycle events (launched, moderated) are published best-effort; no
// delivery guarantee is implied.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// Subjects published by the campaign service.
const (
	SubjectCampaignLaunched  = "campaign.launched"
	SubjectCampaignModerated = "campaign.moderated"
)
