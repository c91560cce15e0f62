package domain

import "time"

// RequestStatus enumerates lifecycle states for session requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusDeclined  RequestStatus = "declined"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// SessionRequest is a proposal from one student to another to meet for a
// shared course at a mutually available time slot. Requests are never
// deleted; terminal ones are retained as history.
type SessionRequest struct {
	ID         int64
	FromUserID int64
	ToUserID   int64
	Course     string
	TimeSlot   string
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
