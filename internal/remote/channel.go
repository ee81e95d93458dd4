// Package remote abstracts the keyed document store the application syncs
// against: point reads, merge writes, live snapshot subscriptions and
// transactions. The production implementation is backed by Firestore; an
// in-memory implementation serves dev personas and tests.
package remote

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrPermissionDenied = errors.New("permission denied")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// Document is one delivered snapshot. Exists is false when the backing
// document has been deleted or never created.
type Document struct {
	Exists bool
	dataTo func(dst any) error
}

func (d *Document) DataTo(dst any) error {
	if !d.Exists {
		return ErrNotFound
	}
	return d.dataTo(dst)
}

// Tx is the handle passed to RunTransaction callbacks. Reads must happen
// before writes, matching Firestore transaction semantics.
type Tx interface {
	Get(collection, id string, dst any) error
	Set(collection, id string, data any) error
	Update(collection, id string, fields map[string]any) error
}

type Channel interface {
	// Get reads one document into dst. Missing documents yield ErrNotFound.
	Get(ctx context.Context, collection, id string, dst any) error

	// Set writes a document. With merge, fields absent from data are
	// preserved remotely; present fields are overwritten.
	Set(ctx context.Context, collection, id string, data any, merge bool) error

	// Subscribe delivers the current state of the document and every
	// subsequent change to onSnapshot until the returned stop function is
	// called. Stream failures go to onError and end the subscription.
	Subscribe(ctx context.Context, collection, id string, onSnapshot func(*Document), onError func(error)) (stop func(), err error)

	// RunTransaction executes fn atomically; any error aborts all writes.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
}
