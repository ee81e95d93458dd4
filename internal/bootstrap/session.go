package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"

	"workout-tracker/backend/internal/domain/plan"
	"workout-tracker/backend/internal/domain/profile"
	"workout-tracker/backend/internal/domain/tracker"
	"workout-tracker/backend/internal/remote"
)

// Session bundles everything one authenticated user interacts with: the
// profile, the plan engine and the workout tracker. It is built once per
// sign-in and torn down on sign-out.
type Session struct {
	UID     string
	Profile *profile.UserProfile
	Engine  *plan.Engine
	Tracker *tracker.Tracker
	DevMode bool

	channel remote.Channel
}

// SwitchActiveSplit changes the active schedule and discards all session
// state: a running workout does not carry across splits.
func (s *Session) SwitchActiveSplit(split string) {
	s.Tracker.Reset()
	s.Engine.Apply(plan.SetActiveSplit(split))
}

// ResetWeek clears completion across the active split and abandons any
// running workout.
func (s *Session) ResetWeek() {
	s.Engine.Apply(plan.ResetWeek())
	s.Tracker.Reset()
}

// UpdateProfile merge-writes profile fields and refreshes the local copy.
// Dev sessions mutate the local copy only.
func (s *Session) UpdateProfile(ctx context.Context, fields map[string]any) error {
	if s.DevMode {
		return mergeProfile(s.Profile, fields)
	}

	if err := s.channel.Set(ctx, profile.UsersCollection, s.UID, fields, true); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	var fresh profile.UserProfile
	if err := s.channel.Get(ctx, profile.UsersCollection, s.UID, &fresh); err != nil {
		return fmt.Errorf("failed to reload profile: %w", err)
	}
	*s.Profile = fresh
	return nil
}

func (s *Session) Close() {
	s.Engine.Close()
	s.Tracker.Reset()
}

func mergeProfile(p *profile.UserProfile, fields map[string]any) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	var current map[string]any
	if err := json.Unmarshal(raw, &current); err != nil {
		return err
	}
	for k, v := range fields {
		current[k] = v
	}
	merged, err := json.Marshal(current)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, p)
}
