package domain

import (
	"encoding/json"
	"time"
)

// NotificationKind identifies what a queued notification is about.
type NotificationKind string

const (
	NotificationBookingConfirmation NotificationKind = "booking_confirmation"
	NotificationBookingCancelled    NotificationKind = "booking_cancelled"
)

// NotificationChannel identifies the delivery transport.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// NotificationStatus is the outbox task lifecycle state.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// NotificationTask is one outbox row. Tasks are inserted in the same
// transaction as the booking write and delivered by a background
// worker, so delivery failure can never undo a committed booking.
type NotificationTask struct {
	ID        string // uuid
	Kind      NotificationKind
	Channel   NotificationChannel
	Recipient string
	Payload   json.RawMessage
	Status    NotificationStatus
	Attempts  int
	LastError *string
	CreatedAt time.Time
	SentAt    *time.Time
}

// NotificationPayload is the serialized message content stored with a
// task. Email tasks use Subject+Body, SMS tasks use Body only.
type NotificationPayload struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}
