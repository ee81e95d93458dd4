package profile

import (
	"strings"

	"workout-tracker/backend/internal/domain/collections"
)

// UsersCollection is where profile documents live, keyed by auth uid.
const UsersCollection = collections.Users

// UserProfile is created once at signup and bound 1:1 to a plan document.
// The date of birth is stored decomposed so locale-sensitive parsing can
// never corrupt it.
type UserProfile struct {
	FirstName   string `firestore:"firstName" json:"firstName"`
	Email       string `firestore:"email" json:"email"`
	PhotoURL    string `firestore:"photoURL" json:"photoURL"`
	DateOfBirth string `firestore:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	DOBDay      string `firestore:"dobDay,omitempty" json:"dobDay,omitempty"`
	DOBMonth    string `firestore:"dobMonth,omitempty" json:"dobMonth,omitempty"`
	DOBYear     string `firestore:"dobYear,omitempty" json:"dobYear,omitempty"`
	Weight      string `firestore:"weight,omitempty" json:"weight,omitempty"`
	Height      string `firestore:"height,omitempty" json:"height,omitempty"`
	Gender      string `firestore:"gender,omitempty" json:"gender,omitempty"`
	WorkoutID   string `firestore:"workoutId" json:"workoutId"`
	IsAdmin     bool   `firestore:"isAdmin,omitempty" json:"isAdmin,omitempty"`
}

// Requester is the verified identity creating a profile.
type Requester struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// ProfileData is the biometric part of the signup form.
type ProfileData struct {
	DateOfBirth string `json:"dateOfBirth"`
	Weight      string `json:"weight,omitempty"`
	Height      string `json:"height,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

type CreateProfileInput struct {
	ProfileData *ProfileData `json:"profileData"`
	InviteID    string       `json:"inviteId,omitempty"`
}

// splitDateOfBirth decomposes "YYYY-MM-DD"; partial input yields whatever
// segments are present.
func splitDateOfBirth(dob string) (day, month, year string) {
	parts := strings.SplitN(dob, "-", 3)
	if len(parts) > 0 {
		year = parts[0]
	}
	if len(parts) > 1 {
		month = parts[1]
	}
	if len(parts) > 2 {
		day = parts[2]
	}
	return day, month, year
}
