package remote

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreChannel adapts a Firestore client to the Channel contract.
type FirestoreChannel struct {
	client *firestore.Client
}

func NewFirestoreChannel(client *firestore.Client) *FirestoreChannel {
	return &FirestoreChannel{client: client}
}

func (c *FirestoreChannel) doc(collection, id string) *firestore.DocumentRef {
	return c.client.Collection(collection).Doc(id)
}

func (c *FirestoreChannel) Get(ctx context.Context, collection, id string, dst any) error {
	snap, err := c.doc(collection, id).Get(ctx)
	if err != nil {
		return mapFirestoreError(err)
	}
	if err := snap.DataTo(dst); err != nil {
		return fmt.Errorf("failed to parse %s/%s: %w", collection, id, err)
	}
	return nil
}

func (c *FirestoreChannel) Set(ctx context.Context, collection, id string, data any, merge bool) error {
	var opts []firestore.SetOption
	if merge {
		// MergeAll is only valid with map data; struct payloads are
		// converted to their field map first.
		fields, err := mergeableFields(data)
		if err != nil {
			return fmt.Errorf("failed to encode %s/%s for merge: %w", collection, id, err)
		}
		data = fields
		opts = append(opts, firestore.MergeAll)
	}
	if _, err := c.doc(collection, id).Set(ctx, data, opts...); err != nil {
		return mapFirestoreError(err)
	}
	return nil
}

// mergeableFields turns a merge payload into the map form the client
// requires. Maps pass through; anything else is round-tripped through its
// JSON tags, which mirror the firestore tags on every synced type.
func mergeableFields(data any) (map[string]any, error) {
	if m, ok := data.(map[string]any); ok {
		return m, nil
	}
	return toFields(data)
}

func (c *FirestoreChannel) Subscribe(ctx context.Context, collection, id string, onSnapshot func(*Document), onError func(error)) (func(), error) {
	iter := c.doc(collection, id).Snapshots(ctx)

	go func() {
		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				onError(mapFirestoreError(err))
				return
			}
			onSnapshot(&Document{Exists: snap.Exists(), dataTo: snap.DataTo})
		}
	}()

	var once sync.Once
	stop := func() { once.Do(iter.Stop) }
	return stop, nil
}

func (c *FirestoreChannel) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	return c.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		return fn(&firestoreTx{channel: c, tx: t})
	})
}

type firestoreTx struct {
	channel *FirestoreChannel
	tx      *firestore.Transaction
}

func (t *firestoreTx) Get(collection, id string, dst any) error {
	snap, err := t.tx.Get(t.channel.doc(collection, id))
	if err != nil {
		return mapFirestoreError(err)
	}
	if err := snap.DataTo(dst); err != nil {
		return fmt.Errorf("failed to parse %s/%s: %w", collection, id, err)
	}
	return nil
}

func (t *firestoreTx) Set(collection, id string, data any) error {
	if err := t.tx.Set(t.channel.doc(collection, id), data); err != nil {
		return mapFirestoreError(err)
	}
	return nil
}

func (t *firestoreTx) Update(collection, id string, fields map[string]any) error {
	if err := t.tx.Set(t.channel.doc(collection, id), fields, firestore.MergeAll); err != nil {
		return mapFirestoreError(err)
	}
	return nil
}

func mapFirestoreError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	default:
		return err
	}
}
