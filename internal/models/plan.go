package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanRecord is one stored generation result, owned by a single principal.
// Records are append-only: every successful authenticated generation creates
// a new document and no document is ever updated in place.
type PlanRecord struct {
	ID           primitive.ObjectID     `json:"id"           bson:"_id,omitempty"`
	UID          string                 `json:"uid"          bson:"uid"`
	Plan         map[string]interface{} `json:"plan"         bson:"plan"`
	Objective    string                 `json:"objective"    bson:"objective"`
	Level        string                 `json:"level"        bson:"level"`
	HoursPerWeek float64                `json:"hoursPerWeek" bson:"hours_per_week"`
	Weeks        int                    `json:"weeks"        bson:"weeks"`
	CreatedAt    time.Time              `json:"createdAt"    bson:"created_at"`
}
