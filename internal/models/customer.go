package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is created exactly once per lead, when a project for that
// lead reaches the approved state.
type Customer struct {
	ID               int       `json:"id"`
	LeadID           int       `json:"lead_id"`
	UserID           int       `json:"user_id"`
	SubscriptionDate time.Time `json:"subscription_date"`
	CreatedAt        time.Time `json:"created_at"`

	// joined on list/get
	CustomerName    string     `json:"customer_name,omitempty"`
	CustomerContact string     `json:"customer_contact,omitempty"`
	CustomerAddress string     `json:"customer_address,omitempty"`
	SalesName       string     `json:"sales_name,omitempty"`
	TotalServices   int        `json:"total_services"`
	LatestEndDate   *time.Time `json:"latest_end_date,omitempty"`
}

const (
	ServiceStatusActive  = "active"
	ServiceStatusStopped = "stopped"
)

// CustomerService is a subscribed product on a customer account. Added
// manually after conversion; not carried over from project items.
type CustomerService struct {
	ID         int        `json:"id"`
	CustomerID int        `json:"customer_id"`
	ProductID  int        `json:"product_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Status     string     `json:"status"`

	// joined on customer detail
	ProductName  string          `json:"product_name,omitempty"`
	RegularPrice decimal.Decimal `json:"regular_price"`
}

// CustomerDetail is the single-customer view with its service list.
type CustomerDetail struct {
	Customer
	Services []CustomerService `json:"services"`
}
