// Package bootstrap resolves which plan document a user is bound to and
// builds the per-session object graph: dev persona short-circuits, the
// auth state stream, the profile lookup and the live plan subscription.
package bootstrap

import (
	"context"
	"log"
	"sync"

	"workout-tracker/backend/internal/domain/plan"
	"workout-tracker/backend/internal/domain/profile"
	"workout-tracker/backend/internal/domain/tracker"
	"workout-tracker/backend/internal/remote"
)

// Dev persona markers, checked before any remote work. The admin persona
// gets a pre-populated local plan; the invited persona simulates a brand
// new user who still has to onboard.
const (
	DevAdminMarker   = "dxw-admin"
	DevInvitedMarker = "dxw-invited"
	DevAdminPlanID   = "dxw-admin-plan"
)

// Identity is one value from the auth state stream; nil means signed out.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// AuthWatcher delivers the current identity and every change to it until
// the returned stop function is called.
type AuthWatcher interface {
	Watch(ctx context.Context, fn func(*Identity)) (stop func(), err error)
}

// WatcherFunc adapts a function to the AuthWatcher interface.
type WatcherFunc func(ctx context.Context, fn func(*Identity)) (func(), error)

func (w WatcherFunc) Watch(ctx context.Context, fn func(*Identity)) (func(), error) {
	return w(ctx, fn)
}

// Hooks are the resolver's outward surface toward the UI shell.
type Hooks struct {
	OnStatus           func(plan.Status)
	OnSession          func(*Session)
	OnRedirectLogin    func()
	OnRedirectWelcome  func()
	OnInvalidCode      func()
	OnPermissionDenied func()
	OnCannotCancel     func()
}

type Resolver struct {
	mu sync.Mutex

	channel   remote.Channel
	auth      AuthWatcher
	hooks     Hooks
	devMarker string

	session  *Session
	stopAuth func()
}

func NewResolver(channel remote.Channel, auth AuthWatcher, devMarker string, hooks Hooks) *Resolver {
	return &Resolver{
		channel:   channel,
		auth:      auth,
		hooks:     hooks,
		devMarker: devMarker,
	}
}

// Run resolves the identity source and starts delivering sessions through
// the hooks. With no backing store configured the resolver reports
// offline and stops.
func (r *Resolver) Run(ctx context.Context) error {
	switch r.devMarker {
	case DevAdminMarker:
		r.startDevAdmin()
		return nil
	case DevInvitedMarker:
		r.redirectWelcome()
		return nil
	case "":
	default:
		log.Printf("bootstrap: unknown dev marker %q, falling back to live auth", r.devMarker)
	}

	if r.channel == nil || r.auth == nil {
		r.emitStatus(plan.StatusOffline)
		return nil
	}

	stop, err := r.auth.Watch(ctx, func(id *Identity) { r.onAuthChange(ctx, id) })
	if err != nil {
		r.emitStatus(plan.StatusError)
		return err
	}

	r.mu.Lock()
	r.stopAuth = stop
	r.mu.Unlock()
	return nil
}

// SignOut tears the session down and sends the user to the login surface.
func (r *Resolver) SignOut() {
	r.teardown()
	if r.hooks.OnRedirectLogin != nil {
		r.hooks.OnRedirectLogin()
	}
}

// Close stops the auth stream and the active session.
func (r *Resolver) Close() {
	r.mu.Lock()
	stop := r.stopAuth
	r.stopAuth = nil
	r.mu.Unlock()
	if stop != nil {
		stop()
	}
	r.teardown()
}

// Session returns the active session, if any.
func (r *Resolver) Session() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

func (r *Resolver) onAuthChange(ctx context.Context, id *Identity) {
	if id == nil {
		r.teardown()
		if r.hooks.OnRedirectLogin != nil {
			r.hooks.OnRedirectLogin()
		}
		return
	}

	var prof profile.UserProfile
	err := r.channel.Get(ctx, profile.UsersCollection, id.UID, &prof)
	if remote.IsNotFound(err) {
		r.redirectWelcome()
		return
	}
	if err != nil {
		log.Printf("bootstrap: profile fetch failed for %s: %v", id.UID, err)
		r.emitStatus(plan.StatusError)
		if remote.IsPermissionDenied(err) && r.hooks.OnPermissionDenied != nil {
			r.hooks.OnPermissionDenied()
		}
		return
	}
	if prof.WorkoutID == "" {
		r.redirectWelcome()
		return
	}

	r.startSession(ctx, id.UID, &prof)
}

func (r *Resolver) startSession(ctx context.Context, uid string, prof *profile.UserProfile) {
	r.teardown()

	engine := plan.NewEngine(r.channel, prof.WorkoutID, plan.Hooks{
		OnStatus: r.hooks.OnStatus,
		OnPlanGone: func() {
			// The bound plan stopped existing: the code is no longer
			// valid, so drop everything local.
			r.teardown()
			if r.hooks.OnInvalidCode != nil {
				r.hooks.OnInvalidCode()
			}
		},
		OnPermissionDenied: r.hooks.OnPermissionDenied,
	})

	sess := &Session{
		UID:     uid,
		Profile: prof,
		Engine:  engine,
		Tracker: tracker.New(engine, notifierFunc(r.hooks.OnCannotCancel)),
		channel: r.channel,
	}

	if err := engine.Start(ctx); err != nil {
		log.Printf("bootstrap: plan subscription failed for %s: %v", prof.WorkoutID, err)
		engine.Close()
		return
	}

	r.mu.Lock()
	r.session = sess
	r.mu.Unlock()

	if r.hooks.OnSession != nil {
		r.hooks.OnSession(sess)
	}
}

func (r *Resolver) startDevAdmin() {
	engine := plan.NewDevEngine(plan.Default("Dev Admin"), plan.Hooks{OnStatus: r.hooks.OnStatus})
	prof := &profile.UserProfile{
		FirstName:   "Dev",
		Email:       "dev-admin@example.com",
		DateOfBirth: "1990-01-15",
		DOBDay:      "15",
		DOBMonth:    "01",
		DOBYear:     "1990",
		Weight:      "80",
		Height:      "180",
		Gender:      "male",
		WorkoutID:   DevAdminPlanID,
		IsAdmin:     true,
	}

	sess := &Session{
		UID:     "dev-admin-user",
		Profile: prof,
		Engine:  engine,
		Tracker: tracker.New(engine, notifierFunc(r.hooks.OnCannotCancel)),
		DevMode: true,
	}

	r.mu.Lock()
	r.session = sess
	r.mu.Unlock()

	r.emitStatus(plan.StatusSynced)
	if r.hooks.OnSession != nil {
		r.hooks.OnSession(sess)
	}
}

func (r *Resolver) teardown() {
	r.mu.Lock()
	sess := r.session
	r.session = nil
	r.mu.Unlock()

	if sess != nil {
		sess.Close()
	}
	r.emitStatus(plan.StatusConnecting)
}

func (r *Resolver) redirectWelcome() {
	if r.hooks.OnRedirectWelcome != nil {
		r.hooks.OnRedirectWelcome()
	}
}

func (r *Resolver) emitStatus(s plan.Status) {
	if r.hooks.OnStatus != nil {
		r.hooks.OnStatus(s)
	}
}

// notifierFunc adapts an optional hook to the tracker's Notifier.
type notifierFunc func()

func (f notifierFunc) CannotCancelWorkout() {
	if f != nil {
		f()
	}
}
