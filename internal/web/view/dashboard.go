package view

import (
	"strings"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

const DashboardTitle = "Rooming List Management: Events"

type Dashboard struct {
	Search   string
	Statuses []StatusOption
	Tags     []EventTag
	Cards    []Card
	Total    int
}

type StatusOption struct {
	Value   string
	Checked bool
}

type EventTag struct {
	Name  string
	Class string
}

// Card is one rooming list tile.
type Card struct {
	ID            int
	Name          string
	AgreementType string
	EventName     string
	Status        string
	StatusClass   string
	Month         string
	Day           string
	DateRange     string
	Bookings      int
}

var tagClasses = map[string]string{
	"Rolling Loud":         "tag-teal",
	"Ultra Miami":          "tag-purple",
	"Tech Conference 2024": "tag-purple",
	"Marketing Summit":     "tag-teal",
}

// TagClass returns the colour class of an event tag; unknown events are grey.
func TagClass(event string) string {
	if c, ok := tagClasses[event]; ok {
		return c
	}
	return "tag-gray"
}

func statusClass(s domain.RFPStatus) string {
	switch s {
	case domain.StatusCompleted:
		return "badge-green"
	case domain.StatusReceived:
		return "badge-blue"
	case domain.StatusConfirmed:
		return "badge-teal"
	default:
		return "badge-gray"
	}
}

// NewDashboard assembles the board from the filtered records, the event
// names of all records and the active filters.
func NewDashboard(filtered []domain.RFP, events []string, f domain.FilterState, total int) Dashboard {
	d := Dashboard{Search: f.Search, Total: total}
	for _, s := range domain.StatusOptions {
		d.Statuses = append(d.Statuses, StatusOption{Value: string(s), Checked: f.HasStatus(s)})
	}
	for _, e := range events {
		d.Tags = append(d.Tags, EventTag{Name: e, Class: TagClass(e)})
	}
	for _, r := range filtered {
		d.Cards = append(d.Cards, NewCard(r))
	}
	return d
}

func NewCard(r domain.RFP) Card {
	c := Card{
		ID:            r.ID,
		Name:          r.Name,
		AgreementType: r.AgreementType,
		EventName:     r.EventName,
		Status:        string(r.Status),
		StatusClass:   statusClass(r.Status),
		Bookings:      len(r.Bookings),
	}
	if t, err := r.CutOff(); err == nil {
		c.Month = strings.ToUpper(t.Format("Jan"))
		c.Day = t.Format("2")
		c.DateRange = t.Format("Jan 2") + " - " + t.Format("Jan 2, 2006")
	}
	return c
}
