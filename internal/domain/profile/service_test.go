package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workout-tracker/backend/internal/domain/invite"
	"workout-tracker/backend/internal/domain/plan"
	"workout-tracker/backend/internal/remote"
)

const adminEmail = "coach@example.com"

func newTestService(ch *remote.MemoryChannel) *Service {
	s := NewService(ch, adminEmail)
	s.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	s.newKey = keySequence("abc123")
	return s
}

// keySequence replaces the random plan key with a fixed series.
func keySequence(keys ...string) func(int) (string, error) {
	i := 0
	return func(int) (string, error) {
		k := keys[i%len(keys)]
		i++
		return k, nil
	}
}

func seedInvite(t *testing.T, ch *remote.MemoryChannel, id, status string) {
	t.Helper()
	err := ch.Set(context.Background(), invite.InvitesCollection, id, invite.Invite{
		GeneratedBy: "admin-uid",
		GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:      status,
	}, false)
	require.NoError(t, err)
}

func signupInput() CreateProfileInput {
	return CreateProfileInput{
		ProfileData: &ProfileData{
			DateOfBirth: "1991-07-23",
			Weight:      "82",
			Height:      "180",
			Gender:      "male",
		},
	}
}

func TestCreate_MissingProfileData(t *testing.T) {
	svc := newTestService(remote.NewMemoryChannel())

	err := svc.Create(context.Background(), Requester{UID: "u1"}, CreateProfileInput{})

	assert.True(t, IsErrBadRequest(err))
}

func TestCreate_ExistingProfileRejected(t *testing.T) {
	ch := remote.NewMemoryChannel()
	require.NoError(t, ch.Set(context.Background(), UsersCollection, "u1", UserProfile{FirstName: "Dani"}, false))
	svc := newTestService(ch)

	err := svc.Create(context.Background(), Requester{UID: "u1"}, signupInput())

	assert.True(t, IsErrAlreadyExists(err))
}

func TestCreate_WithoutInviteOrAdminEmail(t *testing.T) {
	ch := remote.NewMemoryChannel()
	svc := newTestService(ch)

	err := svc.Create(context.Background(), Requester{UID: "u1", Email: "someone@example.com", Name: "Dani Ionescu"}, signupInput())

	assert.True(t, IsErrInvitationRequired(err))

	var p UserProfile
	assert.True(t, remote.IsNotFound(ch.Get(context.Background(), UsersCollection, "u1", &p)))
}

func TestCreate_InviteClaimProvisionsEverything(t *testing.T) {
	ch := remote.NewMemoryChannel()
	seedInvite(t, ch, "invite-xyz", invite.StatusPending)
	svc := newTestService(ch)

	in := signupInput()
	in.InviteID = "invite-xyz"
	req := Requester{UID: "u1", Email: "dani@example.com", Name: "Dani Ionescu", Picture: "https://p/1.jpg"}
	require.NoError(t, svc.Create(context.Background(), req, in))

	var p UserProfile
	require.NoError(t, ch.Get(context.Background(), UsersCollection, "u1", &p))
	assert.Equal(t, "Dani", p.FirstName)
	assert.Equal(t, "dani@example.com", p.Email)
	assert.Equal(t, "https://p/1.jpg", p.PhotoURL)
	assert.Equal(t, "dani-abc123", p.WorkoutID)
	assert.False(t, p.IsAdmin)
	assert.Equal(t, "1991-07-23", p.DateOfBirth)
	assert.Equal(t, "23", p.DOBDay)
	assert.Equal(t, "07", p.DOBMonth)
	assert.Equal(t, "1991", p.DOBYear)

	var seeded plan.WorkoutPlan
	require.NoError(t, ch.Get(context.Background(), plan.WorkoutsCollection, "dani-abc123", &seeded))
	assert.Equal(t, "Dani", seeded.UserName)
	assert.Len(t, seeded.FiveDaySplit, 5)

	var inv invite.Invite
	require.NoError(t, ch.Get(context.Background(), invite.InvitesCollection, "invite-xyz", &inv))
	assert.Equal(t, invite.StatusClaimed, inv.Status)
	assert.Equal(t, "u1", inv.ClaimedByUID)
	assert.Equal(t, "dani@example.com", inv.ClaimedByEmail)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), inv.ClaimedAt)
}

func TestCreate_UnknownInvite(t *testing.T) {
	ch := remote.NewMemoryChannel()
	svc := newTestService(ch)

	in := signupInput()
	in.InviteID = "invite-missing"
	err := svc.Create(context.Background(), Requester{UID: "u1", Name: "Dani"}, in)

	assert.True(t, IsErrInvalidInvite(err))
}

func TestCreate_ClaimedInviteLeavesNothingBehind(t *testing.T) {
	ch := remote.NewMemoryChannel()
	seedInvite(t, ch, "invite-used", invite.StatusClaimed)
	svc := newTestService(ch)

	in := signupInput()
	in.InviteID = "invite-used"
	err := svc.Create(context.Background(), Requester{UID: "u1", Name: "Dani"}, in)

	assert.True(t, IsErrInvalidInvite(err))

	var p UserProfile
	assert.True(t, remote.IsNotFound(ch.Get(context.Background(), UsersCollection, "u1", &p)))
	var w map[string]any
	assert.True(t, remote.IsNotFound(ch.Get(context.Background(), plan.WorkoutsCollection, "dani-abc123", &w)))
}

func TestCreate_AdminEmailBypassesInvite(t *testing.T) {
	ch := remote.NewMemoryChannel()
	svc := newTestService(ch)

	req := Requester{UID: "boss", Email: "Coach@Example.com", Name: "Alex Popescu"}
	require.NoError(t, svc.Create(context.Background(), req, signupInput()))

	var p UserProfile
	require.NoError(t, ch.Get(context.Background(), UsersCollection, "boss", &p))
	assert.True(t, p.IsAdmin)
	assert.Equal(t, "alex-abc123", p.WorkoutID)

	var seeded plan.WorkoutPlan
	require.NoError(t, ch.Get(context.Background(), plan.WorkoutsCollection, "alex-abc123", &seeded))
	assert.Equal(t, "Alex", seeded.UserName)
}

func TestCreate_WorkoutIDCollisionRetries(t *testing.T) {
	ch := remote.NewMemoryChannel()
	seedInvite(t, ch, "invite-xyz", invite.StatusPending)
	require.NoError(t, ch.Set(context.Background(), plan.WorkoutsCollection, "dani-taken1", map[string]any{"userName": "Other"}, false))
	svc := newTestService(ch)
	svc.newKey = keySequence("taken1", "free22")

	in := signupInput()
	in.InviteID = "invite-xyz"
	require.NoError(t, svc.Create(context.Background(), Requester{UID: "u1", Name: "Dani"}, in))

	var p UserProfile
	require.NoError(t, ch.Get(context.Background(), UsersCollection, "u1", &p))
	assert.Equal(t, "dani-free22", p.WorkoutID)
}

func TestCreate_WorkoutIDExhaustionFails(t *testing.T) {
	ch := remote.NewMemoryChannel()
	seedInvite(t, ch, "invite-xyz", invite.StatusPending)
	require.NoError(t, ch.Set(context.Background(), plan.WorkoutsCollection, "dani-stuck1", map[string]any{"userName": "Other"}, false))
	svc := newTestService(ch)
	svc.newKey = keySequence("stuck1")

	in := signupInput()
	in.InviteID = "invite-xyz"
	err := svc.Create(context.Background(), Requester{UID: "u1", Name: "Dani"}, in)

	require.Error(t, err)

	// The failed transaction must not have claimed the invite.
	var inv invite.Invite
	require.NoError(t, ch.Get(context.Background(), invite.InvitesCollection, "invite-xyz", &inv))
	assert.Equal(t, invite.StatusPending, inv.Status)
}

func TestCreate_DiacriticNameSlug(t *testing.T) {
	ch := remote.NewMemoryChannel()
	seedInvite(t, ch, "invite-xyz", invite.StatusPending)
	svc := newTestService(ch)

	in := signupInput()
	in.InviteID = "invite-xyz"
	require.NoError(t, svc.Create(context.Background(), Requester{UID: "u1", Name: "Ștefan Müller"}, in))

	var p UserProfile
	require.NoError(t, ch.Get(context.Background(), UsersCollection, "u1", &p))
	assert.Equal(t, "stefan-abc123", p.WorkoutID)
	assert.Equal(t, "Ștefan", p.FirstName)
}

func TestCreate_EmptyNameFallsBackToUser(t *testing.T) {
	ch := remote.NewMemoryChannel()
	seedInvite(t, ch, "invite-xyz", invite.StatusPending)
	svc := newTestService(ch)

	in := signupInput()
	in.InviteID = "invite-xyz"
	require.NoError(t, svc.Create(context.Background(), Requester{UID: "u1"}, in))

	var p UserProfile
	require.NoError(t, ch.Get(context.Background(), UsersCollection, "u1", &p))
	assert.Equal(t, "User", p.FirstName)
	assert.Equal(t, "user-abc123", p.WorkoutID)
}

func TestSplitDateOfBirth(t *testing.T) {
	day, month, year := splitDateOfBirth("1991-07-23")
	assert.Equal(t, "23", day)
	assert.Equal(t, "07", month)
	assert.Equal(t, "1991", year)

	day, month, year = splitDateOfBirth("1991-07")
	assert.Empty(t, day)
	assert.Equal(t, "07", month)
	assert.Equal(t, "1991", year)

	day, month, year = splitDateOfBirth("")
	assert.Empty(t, day)
	assert.Empty(t, month)
	assert.Empty(t, year)
}
