package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForGym returns a GORM scope that filters by gym_id. Every query
// against gym-owned records goes through it. The column is qualified
// with the statement's own table so joined tables that also carry a
// gym_id column cannot make it ambiguous.
func ForGym(gymID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "gym_id"},
			Value:  gymID,
		})
	}
}
