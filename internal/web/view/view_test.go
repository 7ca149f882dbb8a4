package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

func TestNewCard(t *testing.T) {
	c := NewCard(domain.RFP{
		ID:         1,
		Name:       "ACL-2025",
		CutOffDate: "2025-09-30",
		Status:     domain.StatusConfirmed,
		Bookings:   []domain.Booking{{ID: 1}, {ID: 2}},
	})

	assert.Equal(t, "SEP", c.Month)
	assert.Equal(t, "30", c.Day)
	assert.Equal(t, "Sep 30 - Sep 30, 2025", c.DateRange)
	assert.Equal(t, 2, c.Bookings)
	assert.Equal(t, "badge-teal", c.StatusClass)
}

func TestNewCard_UnparseableDate(t *testing.T) {
	c := NewCard(domain.RFP{CutOffDate: "someday"})
	assert.Empty(t, c.Month)
	assert.Empty(t, c.DateRange)
}

func TestTagClass(t *testing.T) {
	assert.Equal(t, "tag-teal", TagClass("Rolling Loud"))
	assert.Equal(t, "tag-purple", TagClass("Ultra Miami"))
	assert.Equal(t, "tag-gray", TagClass("Local Meetup"))
}

func TestNewDashboard(t *testing.T) {
	d := NewDashboard(
		[]domain.RFP{{ID: 1, Status: domain.StatusReceived}},
		[]string{"Rolling Loud"},
		domain.FilterState{Search: "x", Status: []domain.RFPStatus{domain.StatusArchived}},
		3,
	)

	assert.Equal(t, "x", d.Search)
	assert.Len(t, d.Cards, 1)
	assert.Equal(t, 3, d.Total)
	assert.Equal(t, []EventTag{{Name: "Rolling Loud", Class: "tag-teal"}}, d.Tags)
	for _, s := range d.Statuses {
		assert.Equal(t, s.Value == "archived", s.Checked, s.Value)
	}
}

func TestNewUserList_Pagination(t *testing.T) {
	params := domain.ListUsersParams{Page: 2, Limit: 1, Search: "j"}
	l := NewUserList(&domain.UsersPage{Total: 3, Page: 2, Limit: 1}, params)

	assert.Equal(t, 3, l.Pages)
	assert.Equal(t, "/users?limit=1&page=1&search=j", l.Prev)
	assert.Equal(t, "/users?limit=1&page=3&search=j", l.Next)
}
