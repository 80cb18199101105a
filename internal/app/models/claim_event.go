package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimEvent is one entry of the append-only claim audit trail.
type ClaimEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClaimNumber string             `bson:"claim_number" json:"claim_number"`
	FromStatus  string             `bson:"from_status,omitempty" json:"from_status,omitempty"`
	ToStatus    string             `bson:"to_status" json:"to_status"`
	Source      string             `bson:"source" json:"source"`
	RequestID   string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Payload     interface{}        `bson:"payload,omitempty" json:"payload,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
