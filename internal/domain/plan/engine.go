package plan

import (
	"context"
	"log"
	"reflect"
	"sync"
	"time"

	"workout-tracker/backend/internal/domain/collections"
	"workout-tracker/backend/internal/remote"

	"github.com/google/uuid"
)

// Status mirrors the sync indicator shown to the user.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusSyncing    Status = "syncing"
	StatusSynced     Status = "synced"
	StatusError      Status = "error"
	StatusOffline    Status = "offline"
)

// WorkoutsCollection is where plan documents live.
const WorkoutsCollection = collections.Workouts

// DefaultDebounce is the quiet window edits must survive before a push.
const DefaultDebounce = 1500 * time.Millisecond

// Hooks are the engine's outward surface. All hooks are optional and are
// invoked outside the engine lock.
type Hooks struct {
	OnStatus func(Status)

	// OnPlan fires when a remote snapshot (not a self-echo) replaces the
	// local document.
	OnPlan func(*WorkoutPlan)

	// OnPlanGone fires when the subscribed document stops existing; the
	// owner is expected to tear the session down.
	OnPlanGone func()

	OnPermissionDenied func()
}

// Engine owns the in-memory plan document and its remote synchronization:
// optimistic local applies, a debounced merge push of the latest document,
// and live snapshot hydration with self-echo suppression.
//
// Every push stamps the document with this engine's client id and a
// monotonically increasing revision. An incoming snapshot carrying our own
// id with a revision at or below the last push is an echo of a write we
// already hold and is discarded, so the subscription can never loop a
// local edit back into the push pipeline.
type Engine struct {
	mu sync.Mutex

	channel    remote.Channel
	collection string
	docID      string
	clientID   string
	debounce   time.Duration
	hooks      Hooks
	devMode    bool

	ctx     context.Context
	current *WorkoutPlan
	status  Status
	rev     int64
	timer   *time.Timer
	stop    func()
	closed  bool
}

type Option func(*Engine)

// WithDebounce overrides the push quiet window. Tests use short windows.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

func NewEngine(channel remote.Channel, docID string, hooks Hooks, opts ...Option) *Engine {
	e := &Engine{
		channel:    channel,
		collection: WorkoutsCollection,
		docID:      docID,
		clientID:   uuid.NewString(),
		debounce:   DefaultDebounce,
		hooks:      hooks,
		status:     StatusConnecting,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewDevEngine returns an engine bound to no remote at all: transforms
// apply locally and every save is a no-op. Used by the dev personas.
func NewDevEngine(seed *WorkoutPlan, hooks Hooks) *Engine {
	return &Engine{
		clientID: uuid.NewString(),
		debounce: DefaultDebounce,
		hooks:    hooks,
		devMode:  true,
		current:  seed.Clone(),
		status:   StatusSynced,
	}
}

// Start subscribes to the plan document. The initial snapshot hydrates the
// local copy.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.devMode || e.closed {
		e.mu.Unlock()
		return nil
	}
	e.ctx = ctx
	e.status = StatusSyncing
	e.mu.Unlock()
	e.emitStatus(StatusSyncing)

	stop, err := e.channel.Subscribe(ctx, e.collection, e.docID, e.onSnapshot, e.onSubscribeError)
	if err != nil {
		e.setStatus(StatusError)
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		stop()
		return nil
	}
	e.stop = stop
	e.mu.Unlock()
	return nil
}

// Close tears the engine down: pending pushes are dropped, the
// subscription ends, and late timer callbacks become no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	stop := e.stop
	e.stop = nil
	e.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Current returns a deep copy of the document, or nil before hydration.
func (e *Engine) Current() *WorkoutPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	return e.current.Clone()
}

// Apply runs a transform against a clone of the current document and, when
// the output differs, installs it and schedules a push. Identical output
// is a skippable save: no status change and no debounce reset, so
// validation no-ops never cause needless syncs.
func (e *Engine) Apply(t Transform) {
	e.mu.Lock()
	if e.closed || e.current == nil {
		e.mu.Unlock()
		return
	}

	next := e.current.Clone()
	t(next)
	if reflect.DeepEqual(next, e.current) {
		e.mu.Unlock()
		return
	}
	e.current = next

	if e.devMode {
		e.mu.Unlock()
		return
	}

	e.status = StatusSyncing
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.flush)
	e.mu.Unlock()

	e.emitStatus(StatusSyncing)
}

// flush pushes the latest document. Edits made while a push is in flight
// schedule another flush with a higher revision; the echo filter accepts
// nothing older than the newest push.
func (e *Engine) flush() {
	e.mu.Lock()
	if e.closed || e.current == nil {
		e.mu.Unlock()
		return
	}
	e.rev++
	e.current.OriginClient = e.clientID
	e.current.OriginRev = e.rev
	snapshot := e.current.Clone()
	ctx := e.ctx
	e.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	err := e.channel.Set(ctx, e.collection, e.docID, snapshot, true)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if err != nil {
		e.status = StatusError
		e.mu.Unlock()
		log.Printf("plan: push failed for %s/%s: %v", e.collection, e.docID, err)
		e.emitStatus(StatusError)
		if remote.IsPermissionDenied(err) && e.hooks.OnPermissionDenied != nil {
			e.hooks.OnPermissionDenied()
		}
		return
	}
	e.status = StatusSynced
	e.mu.Unlock()
	e.emitStatus(StatusSynced)
}

func (e *Engine) onSnapshot(doc *remote.Document) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	if !doc.Exists {
		stop := e.stop
		e.stop = nil
		e.mu.Unlock()
		if stop != nil {
			stop()
		}
		if e.hooks.OnPlanGone != nil {
			e.hooks.OnPlanGone()
		}
		return
	}

	var p WorkoutPlan
	if err := doc.DataTo(&p); err != nil {
		e.status = StatusError
		e.mu.Unlock()
		log.Printf("plan: bad snapshot for %s/%s: %v", e.collection, e.docID, err)
		e.emitStatus(StatusError)
		return
	}

	if p.OriginClient == e.clientID && p.OriginRev <= e.rev {
		// Echo of our own write; the local copy is already at least
		// this new.
		e.mu.Unlock()
		return
	}

	e.current = &p
	e.status = StatusSynced
	e.mu.Unlock()

	e.emitStatus(StatusSynced)
	if e.hooks.OnPlan != nil {
		e.hooks.OnPlan(p.Clone())
	}
}

func (e *Engine) onSubscribeError(err error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.status = StatusError
	e.mu.Unlock()

	log.Printf("plan: snapshot stream failed for %s/%s: %v", e.collection, e.docID, err)
	e.emitStatus(StatusError)
	if remote.IsPermissionDenied(err) && e.hooks.OnPermissionDenied != nil {
		e.hooks.OnPermissionDenied()
	}
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
	e.emitStatus(s)
}

func (e *Engine) emitStatus(s Status) {
	if e.hooks.OnStatus != nil {
		e.hooks.OnStatus(s)
	}
}
