package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRowRemark(t *testing.T) {
	tests := []struct {
		input string
		want  RowRemark
		ok    bool
	}{
		{"pending", RemarkPending, true},
		{"Assigned To", RemarkAssignedTo, true},
		{"design_pending", RemarkDesignPending, true},
		{" PRINTING ", RemarkPrinting, true},
		{"installation pending", RemarkInstallationPending, true},
		{"Completed", RemarkCompleted, true},
		{"shipped", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRowRemark(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowRemarkTransitions(t *testing.T) {
	assert.True(t, RemarkPending.CanTransitionTo(RemarkPrinting))
	assert.True(t, RemarkPrinting.CanTransitionTo(RemarkDesignPending), "non-terminal remarks move freely")
	assert.True(t, RemarkCompleted.CanTransitionTo(RemarkPending), "completed rows can be reopened")
	assert.False(t, RemarkCompleted.CanTransitionTo(RemarkPrinting))
	assert.False(t, RemarkPending.CanTransitionTo(RowRemark("shipped")))
}

func TestParseDesignStatus(t *testing.T) {
	got, ok := ParseDesignStatus("In Progress")
	assert.True(t, ok)
	assert.Equal(t, DesignInProgress, got)

	got, ok = ParseDesignStatus("assigned_to_service")
	assert.True(t, ok)
	assert.Equal(t, DesignAssignedToService, got)

	_, ok = ParseDesignStatus("archived")
	assert.False(t, ok)
}

func TestDesignStatusTransitions(t *testing.T) {
	for i, from := range DesignStatuses {
		for j, to := range DesignStatuses {
			want := j == i+1
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, DesignProcessed.CanTransitionTo(DesignPending))
}

func TestParseClientStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ClientStatus
		ok    bool
	}{
		{"new", ClientNew, true},
		{"Follow Up", ClientFollowUp, true},
		{"follow-up", ClientFollowUp, true},
		{"followup", ClientFollowUp, true},
		{"sale_closed", ClientSaleClosed, true},
		{"Not Interested", ClientNotInterested, true},
		{"next-month", ClientNextMonth, true},
		{"maybe", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseClientStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoles(t *testing.T) {
	role, ok := ParseRole("Sales Manager")
	assert.True(t, ok)
	assert.Equal(t, RoleSalesManager, role)
	assert.Equal(t, "/sales-manager-dashboard", role.Route())

	_, ok = ParseRole("customer")
	assert.False(t, ok)

	assert.Less(t, RoleServiceExecutive.Precedence(), RoleExecutive.Precedence())
	assert.Less(t, RoleAdmin.Precedence(), RoleDesigner.Precedence())
	assert.Equal(t, len(Roles), Role("ghost").Precedence())
	for _, r := range Roles {
		assert.NotEmpty(t, r.Route(), "every role has a dashboard")
	}
}
