package domain

// CategoryType is the side of the ledger a category applies to.
type CategoryType string

const (
	ExpenseCategory CategoryType = "expense"
	IncomeCategory  CategoryType = "income"
)

// Category is lookup data used to label transactions. Categories without an owner are
// shared defaults visible to everyone.
type Category struct {
	CategoryID int64        `json:"categoryID"`
	OwnerID    *string      `json:"ownerID,omitempty"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Color      string       `json:"color"`
	Icon       string       `json:"icon"`
	AuditFields
}

// VisibleTo reports whether userID may use the category.
func (c *Category) VisibleTo(userID string) bool {
	return c.OwnerID == nil || *c.OwnerID == userID
}
