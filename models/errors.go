package models

import "errors"

var (
	ErrUnknownRemark        = errors.New("unknown row remark")
	ErrRemarkTransition     = errors.New("a completed row can only be reopened as pending")
	ErrAssigneeRequired     = errors.New("assigned-to requires the name of the assignee")
	ErrCompletionMismatch   = errors.New("is_completed must match the completed remark")
	ErrInvalidTransition    = errors.New("status transition is not allowed")
	ErrDiscountExceedsTotal = errors.New("discount cannot exceed the order total")
	ErrAdvanceExceedsTotal  = errors.New("advance cannot exceed the discounted total")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrFollowUpDateRequired = errors.New("followup status requires a follow_up_date")
)
