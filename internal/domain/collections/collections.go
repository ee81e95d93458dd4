// Package collections names the document-store collections shared by the
// domain services, so no service spells another service's collection as a
// string literal.
package collections

const (
	Users    = "users"
	Workouts = "workouts"
	Invites  = "invites"
)
