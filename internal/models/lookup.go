package models

// Classification is the lookup table for budget item classifications.
// Seeded values: Fijo, Variable, Discrecional.
type Classification struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// ControlType is the lookup table for budget item control flags.
// Seeded values: Necesario, Discrecional.
type ControlType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Seeded lookup names. Create operations resolve these human-readable names
// to their backend identifiers before inserting.
const (
	ClassificationFixed         = "Fijo"
	ClassificationVariable      = "Variable"
	ClassificationDiscretionary = "Discrecional"

	ControlNecessary     = "Necesario"
	ControlDiscretionary = "Discrecional"
)
