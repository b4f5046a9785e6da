package models

// Category is the row shape of the categories table. A NULL owner marks a shared default.
type Category struct {
	CategoryID int64   `db:"category_id" json:"category_id,omitempty"`
	OwnerID    *string `db:"owner_id" json:"owner_id"`
	Name       string  `db:"name" json:"name"`
	Type       string  `db:"type" json:"type"`
	Color      string  `db:"color" json:"color"`
	Icon       string  `db:"icon" json:"icon"`
	AuditFields
}
