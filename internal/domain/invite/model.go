package invite

import (
	"time"

	"workout-tracker/backend/internal/domain/collections"
)

// InvitesCollection is where invite documents live.
const InvitesCollection = collections.Invites

const (
	StatusPending = "pending"
	StatusClaimed = "claimed"
	StatusExpired = "expired"
)

// Invite tracks one signup invitation. The document holds only metadata
// about the invite itself; the claimed plan lives in the workouts
// collection.
type Invite struct {
	GeneratedBy    string    `firestore:"generatedBy" json:"generatedBy"`
	GeneratedAt    time.Time `firestore:"generatedAt" json:"generatedAt"`
	Status         string    `firestore:"status" json:"status"`
	ClaimedByUID   string    `firestore:"claimedByUid,omitempty" json:"claimedByUid,omitempty"`
	ClaimedByEmail string    `firestore:"claimedByEmail,omitempty" json:"claimedByEmail,omitempty"`
	ClaimedAt      time.Time `firestore:"claimedAt,omitempty" json:"claimedAt,omitempty"`
}
