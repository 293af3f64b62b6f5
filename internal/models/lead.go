package models

import "time"

// Lead statuses. Transitions between the first three are advisory;
// "converted" is set only by project approval.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
)

type Lead struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Address     string    `json:"address"`
	Requirement string    `json:"requirement"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// joined on list/get
	SalesName string `json:"sales_name,omitempty"`
}

type LeadStats struct {
	TotalLeads     int `json:"total_leads"`
	NewLeads       int `json:"new_leads"`
	ContactedLeads int `json:"contacted_leads"`
	QualifiedLeads int `json:"qualified_leads"`
	ConvertedLeads int `json:"converted_leads"`
}
