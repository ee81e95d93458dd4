package profile

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"workout-tracker/backend/internal/domain/invite"
	"workout-tracker/backend/internal/domain/plan"
	"workout-tracker/backend/internal/remote"
	"workout-tracker/backend/internal/utils"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	workoutKeyLength  = 6
	maxWorkoutIDRetry = 5
)

type Service struct {
	channel    remote.Channel
	adminEmail string
	now        func() time.Time
	newKey     func(length int) (string, error)
}

func NewService(channel remote.Channel, adminEmail string) *Service {
	return &Service{
		channel:    channel,
		adminEmail: adminEmail,
		now:        time.Now,
		newKey: func(length int) (string, error) {
			return gonanoid.New(length)
		},
	}
}

// Create provisions a profile and its plan document. Invited users claim
// their invite and plan atomically; the configured admin gets a plan
// without an invite; everyone else is turned away.
func (s *Service) Create(ctx context.Context, req Requester, in CreateProfileInput) error {
	if in.ProfileData == nil {
		return fmt.Errorf("%w: missing profile data", ErrBadRequest)
	}

	var existing UserProfile
	err := s.channel.Get(ctx, UsersCollection, req.UID, &existing)
	if err == nil {
		return fmt.Errorf("%w: user %s", ErrAlreadyExists, req.UID)
	}
	if !remote.IsNotFound(err) {
		return fmt.Errorf("failed to check existing profile: %w", err)
	}

	firstName := utils.FirstNameOf(req.Name)
	isAdmin := s.adminEmail != "" && strings.EqualFold(req.Email, s.adminEmail)

	var workoutID string
	switch {
	case in.InviteID != "":
		workoutID, err = s.claimInvite(ctx, req, in.InviteID, firstName)
	case isAdmin:
		workoutID, err = s.createAdminPlan(ctx, firstName)
	default:
		return fmt.Errorf("%w: an invitation is required to sign up", ErrInvitationRequired)
	}
	if err != nil {
		return err
	}

	day, month, year := splitDateOfBirth(in.ProfileData.DateOfBirth)
	p := UserProfile{
		FirstName:   firstName,
		Email:       req.Email,
		PhotoURL:    req.Picture,
		DateOfBirth: in.ProfileData.DateOfBirth,
		DOBDay:      day,
		DOBMonth:    month,
		DOBYear:     year,
		Weight:      in.ProfileData.Weight,
		Height:      in.ProfileData.Height,
		Gender:      in.ProfileData.Gender,
		WorkoutID:   workoutID,
		IsAdmin:     isAdmin,
	}
	if err := s.channel.Set(ctx, UsersCollection, req.UID, p, false); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}

	log.Printf("profile: created %s with plan %s", req.UID, workoutID)
	return nil
}

// claimInvite atomically verifies the invite is still pending, reserves a
// unique plan id, seeds the plan and marks the invite claimed. All reads
// happen before the writes, per the store's transaction rule.
func (s *Service) claimInvite(ctx context.Context, req Requester, inviteID, firstName string) (string, error) {
	var workoutID string

	err := s.channel.RunTransaction(ctx, func(tx remote.Tx) error {
		var inv invite.Invite
		if err := tx.Get(invite.InvitesCollection, inviteID, &inv); err != nil {
			if remote.IsNotFound(err) {
				return fmt.Errorf("%w: %s", ErrInvalidInvite, inviteID)
			}
			return err
		}
		if inv.Status != invite.StatusPending {
			return fmt.Errorf("%w: already %s", ErrInvalidInvite, inv.Status)
		}

		id, err := s.reserveWorkoutID(firstName, func(candidate string) (bool, error) {
			var probe map[string]any
			err := tx.Get(plan.WorkoutsCollection, candidate, &probe)
			if remote.IsNotFound(err) {
				return true, nil
			}
			return false, err
		})
		if err != nil {
			return err
		}
		workoutID = id

		if err := tx.Set(plan.WorkoutsCollection, workoutID, plan.Default(firstName)); err != nil {
			return err
		}
		return tx.Update(invite.InvitesCollection, inviteID, map[string]any{
			"status":         invite.StatusClaimed,
			"claimedByUid":   req.UID,
			"claimedByEmail": req.Email,
			"claimedAt":      s.now().UTC(),
		})
	})
	if err != nil {
		return "", err
	}
	return workoutID, nil
}

func (s *Service) createAdminPlan(ctx context.Context, firstName string) (string, error) {
	workoutID, err := s.reserveWorkoutID(firstName, func(candidate string) (bool, error) {
		var probe map[string]any
		err := s.channel.Get(ctx, plan.WorkoutsCollection, candidate, &probe)
		if remote.IsNotFound(err) {
			return true, nil
		}
		return false, err
	})
	if err != nil {
		return "", err
	}

	if err := s.channel.Set(ctx, plan.WorkoutsCollection, workoutID, plan.Default(firstName), false); err != nil {
		return "", fmt.Errorf("failed to seed plan: %w", err)
	}
	return workoutID, nil
}

// reserveWorkoutID proposes ids of the form <first-name-slug>-<key> until
// one is free, giving up after a handful of collisions.
func (s *Service) reserveWorkoutID(firstName string, free func(candidate string) (bool, error)) (string, error) {
	slug := utils.Slugify(firstName)
	if slug == "" {
		slug = "user"
	}

	for attempt := 0; attempt < maxWorkoutIDRetry; attempt++ {
		key, err := s.newKey(workoutKeyLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate plan key: %w", err)
		}
		candidate := slug + "-" + key

		ok, err := free(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not reserve a unique plan id for %q", firstName)
}
