package model

// Medication is a deduplicated catalog entry, keyed by name.
type Medication struct {
	Base
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description,omitempty"`
	Price       float64 `db:"price" json:"price"`
}
