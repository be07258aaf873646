package domain

import (
	"time"
)

type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelInApp Channel = "IN_APP"
)

// Valid reports whether c is one of the three supported channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelInApp:
		return true
	}
	return false
}

type CampaignStatus string

const (
	CampaignPending  CampaignStatus = "PENDING"
	CampaignApproved CampaignStatus = "APPROVED"
	CampaignRejected CampaignStatus = "REJECTED"
	CampaignSent     CampaignStatus = "SENT"
	CampaignEmpty    CampaignStatus = "EMPTY"
)

// Launchable reports whether a campaign in this status may be launched.
// REJECTED, SENT and EMPTY are terminal: a new campaign must be created.
func (s CampaignStatus) Launchable() bool {
	return s == CampaignPending || s == CampaignApproved
}

// Mutable reports whether a campaign in this status may still be edited or
// deleted by its owner. Only SENT locks content.
func (s CampaignStatus) Mutable() bool {
	return s != CampaignSent
}

type Campaign struct {
	ID                string         `json:"id" gorm:"primaryKey"`
	Title             string         `json:"title"`
	Message           string         `json:"message"`
	Channel           Channel        `json:"channel"`
	Status            CampaignStatus `json:"status" gorm:"index"`
	SelectionCriteria string         `json:"selection_criteria"`
	ScheduledBy       string         `json:"scheduled_by" gorm:"index"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// CampaignSummary is a campaign joined with the name of the user who
// scheduled it, as returned by list/detail queries.
type CampaignSummary struct {
	Campaign           `gorm:"embedded"`
	SchedulerFirstName string `json:"first_name"`
	SchedulerLastName  string `json:"last_name"`
}

// DispatchSummary reports the outcome of one dispatch pass over a
// campaign's resolved recipients.
type DispatchSummary struct {
	Channel   Channel `json:"channel"`
	Attempted int     `json:"attempted"`
	Failed    int     `json:"failed"`
}
