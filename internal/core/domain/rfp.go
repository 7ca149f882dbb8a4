package domain

import (
	"fmt"
	"time"
)

// RFPStatus is the lifecycle state of a rooming list. Values are compared
// exactly, so "Confirmed" and "confirmed" are different statuses.
type RFPStatus string

const (
	StatusCompleted RFPStatus = "completed"
	StatusReceived  RFPStatus = "received"
	StatusArchived  RFPStatus = "archived"
	StatusConfirmed RFPStatus = "Confirmed"
)

// StatusOptions lists the statuses offered by the dashboard filter, in display order.
var StatusOptions = []RFPStatus{StatusCompleted, StatusReceived, StatusArchived, StatusConfirmed}

// RFP is a rooming list attached to an event.
type RFP struct {
	ID            int       `json:"roomingListId"`
	EventID       int       `json:"eventId,omitempty"`
	Name          string    `json:"rfpName"`
	AgreementType string    `json:"agreement_type"`
	EventName     string    `json:"eventName"`
	CutOffDate    string    `json:"cutOffDate"`
	Status        RFPStatus `json:"status"`
	Bookings      []Booking `json:"bookings"`
}

type Booking struct {
	ID           int    `json:"bookingId"`
	GuestName    string `json:"guestName"`
	PhoneNumber  string `json:"guestPhoneNumber,omitempty"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

// CutOff parses CutOffDate as either an RFC 3339 timestamp or a plain date.
func (r RFP) CutOff() (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, r.CutOffDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("rfp %d: unparseable cut-off date %q", r.ID, r.CutOffDate)
}

// FilterState narrows the dashboard. An empty Status set means every status.
type FilterState struct {
	Search string
	Status []RFPStatus
}

// HasStatus reports whether s is selected.
func (f FilterState) HasStatus(s RFPStatus) bool {
	for _, v := range f.Status {
		if v == s {
			return true
		}
	}
	return false
}
