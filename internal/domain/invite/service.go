package invite

import (
	"context"
	"fmt"
	"log"
	"time"

	"workout-tracker/backend/internal/domain/collections"
	"workout-tracker/backend/internal/remote"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const inviteKeyLength = 8

type Service struct {
	channel remote.Channel
	now     func() time.Time
	newKey  func(length int) (string, error)
}

func NewService(channel remote.Channel) *Service {
	return &Service{
		channel: channel,
		now:     time.Now,
		newKey: func(length int) (string, error) {
			return gonanoid.New(length)
		},
	}
}

// Issue creates a pending invite. Only users whose profile carries the
// admin flag may issue one.
func (s *Service) Issue(ctx context.Context, requesterUID string) (string, error) {
	var p struct {
		IsAdmin bool `firestore:"isAdmin" json:"isAdmin"`
	}
	if err := s.channel.Get(ctx, collections.Users, requesterUID, &p); err != nil {
		if remote.IsNotFound(err) {
			return "", fmt.Errorf("%w: user is not an admin", ErrForbidden)
		}
		return "", fmt.Errorf("failed to load requester profile: %w", err)
	}
	if !p.IsAdmin {
		return "", fmt.Errorf("%w: user is not an admin", ErrForbidden)
	}

	key, err := s.newKey(inviteKeyLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate invite key: %w", err)
	}
	id := "invite-" + key

	inv := Invite{
		GeneratedBy: requesterUID,
		GeneratedAt: s.now().UTC(),
		Status:      StatusPending,
	}
	if err := s.channel.Set(ctx, InvitesCollection, id, inv, false); err != nil {
		return "", fmt.Errorf("failed to create invite: %w", err)
	}

	log.Printf("invite: %s issued by %s", id, requesterUID)
	return id, nil
}

// DevInviteID returns a throwaway invite id for the dev personas; nothing
// is written.
func DevInviteID() (string, error) {
	key, err := gonanoid.New(inviteKeyLength)
	if err != nil {
		return "", err
	}
	return "dev-invite-" + key, nil
}
