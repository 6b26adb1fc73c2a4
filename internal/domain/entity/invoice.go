package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a billed document owned by a customer. Immutable once issued
// except for its payment fields; never deleted while a dispatch assignment
// references it.
type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	IssueDate     time.Time       `json:"issue_date"` // Calendar day; time component is zeroed.
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Paid          bool            `json:"paid"`
	CollectedAt   *time.Time      `json:"collected_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SameIssueDay reports whether the invoice was issued on the given calendar day.
func (i *Invoice) SameIssueDay(day time.Time) bool {
	y1, m1, d1 := i.IssueDate.Date()
	y2, m2, d2 := day.Date()

	return y1 == y2 && m1 == m2 && d1 == d2
}
