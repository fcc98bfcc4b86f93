package models

import "strings"

// RowRemark is the service stage of a single order row
type RowRemark string

const (
	RemarkPending             RowRemark = "pending"
	RemarkAssignedTo          RowRemark = "assigned-to"
	RemarkDesignPending       RowRemark = "design-pending"
	RemarkPrinting            RowRemark = "printing"
	RemarkInstallationPending RowRemark = "installation-pending"
	RemarkCompleted           RowRemark = "completed"
)

// RowRemarks lists every accepted remark value
var RowRemarks = []RowRemark{
	RemarkPending,
	RemarkAssignedTo,
	RemarkDesignPending,
	RemarkPrinting,
	RemarkInstallationPending,
	RemarkCompleted,
}

// ParseRowRemark normalizes free text such as "Assigned To" or "design_pending"
// into a RowRemark. The second value is false for unknown remarks.
func ParseRowRemark(s string) (RowRemark, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	for _, r := range RowRemarks {
		if string(r) == normalized {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether r is part of the remark vocabulary
func (r RowRemark) Valid() bool {
	for _, known := range RowRemarks {
		if r == known {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether a row may move from r to next.
// A completed row can only be reopened as pending.
func (r RowRemark) CanTransitionTo(next RowRemark) bool {
	if !next.Valid() {
		return false
	}
	if r == RemarkCompleted {
		return next == RemarkCompleted || next == RemarkPending
	}
	return true
}

// DesignStatus is the lifecycle state of a design request
type DesignStatus string

const (
	DesignPending           DesignStatus = "pending"
	DesignInProgress        DesignStatus = "in-progress"
	DesignCompleted         DesignStatus = "completed"
	DesignAssignedToService DesignStatus = "assigned-to-service"
	DesignProcessed         DesignStatus = "processed"
)

// DesignStatuses lists the lifecycle in order
var DesignStatuses = []DesignStatus{
	DesignPending,
	DesignInProgress,
	DesignCompleted,
	DesignAssignedToService,
	DesignProcessed,
}

// designTransitions is the only set of allowed forward moves
var designTransitions = map[DesignStatus][]DesignStatus{
	DesignPending:           {DesignInProgress},
	DesignInProgress:        {DesignCompleted},
	DesignCompleted:         {DesignAssignedToService},
	DesignAssignedToService: {DesignProcessed},
	DesignProcessed:         {},
}

// ParseDesignStatus accepts "in progress", "In_Progress" and similar spellings
func ParseDesignStatus(s string) (DesignStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	status := DesignStatus(normalized)
	if _, ok := designTransitions[status]; !ok {
		return "", false
	}
	return status, true
}

// Valid reports whether s is a known design status
func (s DesignStatus) Valid() bool {
	_, ok := designTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s DesignStatus) CanTransitionTo(next DesignStatus) bool {
	for _, allowed := range designTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ClientStatus is the sales stage of a prospective client
type ClientStatus string

const (
	ClientNew           ClientStatus = "new"
	ClientContacted     ClientStatus = "contacted"
	ClientFollowUp      ClientStatus = "followup"
	ClientSaleClosed    ClientStatus = "sale closed"
	ClientNotInterested ClientStatus = "not interested"
	ClientNextMonth     ClientStatus = "next month"
)

// ClientStatuses lists every accepted prospective client status
var ClientStatuses = []ClientStatus{
	ClientNew,
	ClientContacted,
	ClientFollowUp,
	ClientSaleClosed,
	ClientNotInterested,
	ClientNextMonth,
}

// ParseClientStatus accepts "Follow Up", "sale_closed", "next-month" and similar
func ParseClientStatus(s string) (ClientStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	if normalized == "follow up" {
		normalized = string(ClientFollowUp)
	}
	for _, status := range ClientStatuses {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// AppointmentStatus is the state of a scheduled client meeting
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// InteractionType distinguishes outreach channels counted for performance
type InteractionType string

const (
	InteractionCall     InteractionType = "call"
	InteractionWhatsApp InteractionType = "whatsapp"
)
