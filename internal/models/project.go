package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project statuses. waiting_approval is the only non-terminal state.
const (
	ProjectStatusWaitingApproval = "waiting_approval"
	ProjectStatusApproved        = "approved"
	ProjectStatusRejected        = "rejected"
)

type Project struct {
	ID              int        `json:"id"`
	LeadID          int        `json:"lead_id"`
	UserID          int        `json:"user_id"`
	Status          string     `json:"status"`
	ApprovedBy      *int       `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ProjectItem struct {
	ID              int             `json:"id"`
	ProjectID       int             `json:"project_id"`
	ProductID       int             `json:"product_id"`
	NegotiatedPrice decimal.Decimal `json:"negotiated_price"`
	Quantity        int             `json:"quantity"`
	Subtotal        decimal.Decimal `json:"subtotal"`

	// joined on detail view
	ProductName  string          `json:"product_name,omitempty"`
	RegularPrice decimal.Decimal `json:"regular_price"`
}

// ProjectSummary is the list-view row with resolved names and totals.
type ProjectSummary struct {
	Project
	LeadName       string          `json:"lead_name"`
	LeadContact    string          `json:"lead_contact"`
	SalesName      string          `json:"sales_name"`
	ApprovedByName *string         `json:"approved_by_name,omitempty"`
	TotalItems     int             `json:"total_items"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

// ProjectDetail is the single-project view with its item list.
type ProjectDetail struct {
	Project
	LeadName       string        `json:"lead_name"`
	LeadContact    string        `json:"lead_contact"`
	LeadAddress    string        `json:"lead_address"`
	SalesName      string        `json:"sales_name"`
	ApprovedByName *string       `json:"approved_by_name,omitempty"`
	Items          []ProjectItem `json:"items"`
}
