package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryChannel is an in-process Channel used by the dev personas and by
// tests. Documents are stored as decoded JSON field maps so that merge
// writes behave like Firestore's MergeAll. Subscribers receive the current
// state on subscribe and every write after it, synchronously.
type MemoryChannel struct {
	mu      sync.Mutex
	docs    map[string]map[string]any // "collection/id" -> fields
	subs    map[string]map[int]*memorySub
	nextSub int
}

type memorySub struct {
	onSnapshot func(*Document)
	stopped    bool
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{
		docs: map[string]map[string]any{},
		subs: map[string]map[int]*memorySub{},
	}
}

func key(collection, id string) string { return collection + "/" + id }

func toFields(data any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func fieldsInto(fields map[string]any, dst any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func mergeFields(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if cur, ok := dst[k].(map[string]any); ok {
				mergeFields(cur, sub)
				continue
			}
		}
		dst[k] = v
	}
}

func (c *MemoryChannel) Get(_ context.Context, collection, id string, dst any) error {
	c.mu.Lock()
	fields, ok := c.docs[key(collection, id)]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return fieldsInto(fields, dst)
}

func (c *MemoryChannel) Set(_ context.Context, collection, id string, data any, merge bool) error {
	fields, err := toFields(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	k := key(collection, id)
	if cur, ok := c.docs[k]; ok && merge {
		mergeFields(cur, fields)
	} else {
		c.docs[k] = fields
	}
	c.mu.Unlock()

	c.notify(collection, id)
	return nil
}

// Delete removes a document and notifies subscribers with a non-existent
// snapshot, mirroring a remote deletion of a live-subscribed plan.
func (c *MemoryChannel) Delete(collection, id string) {
	c.mu.Lock()
	delete(c.docs, key(collection, id))
	c.mu.Unlock()

	c.notify(collection, id)
}

func (c *MemoryChannel) Subscribe(_ context.Context, collection, id string, onSnapshot func(*Document), _ func(error)) (func(), error) {
	c.mu.Lock()
	k := key(collection, id)
	if c.subs[k] == nil {
		c.subs[k] = map[int]*memorySub{}
	}
	c.nextSub++
	n := c.nextSub
	sub := &memorySub{onSnapshot: onSnapshot}
	c.subs[k][n] = sub
	c.mu.Unlock()

	// Initial snapshot, like Firestore's snapshot listener.
	onSnapshot(c.snapshot(collection, id))

	stop := func() {
		c.mu.Lock()
		sub.stopped = true
		delete(c.subs[k], n)
		c.mu.Unlock()
	}
	return stop, nil
}

func (c *MemoryChannel) snapshot(collection, id string) *Document {
	c.mu.Lock()
	fields, ok := c.docs[key(collection, id)]
	var raw []byte
	var err error
	if ok {
		// Serialize under the lock so the snapshot is frozen at delivery
		// time; later merge writes mutate the live fields map.
		raw, err = json.Marshal(fields)
	}
	c.mu.Unlock()

	if !ok {
		return &Document{Exists: false}
	}
	return &Document{
		Exists: true,
		dataTo: func(dst any) error {
			if err != nil {
				return err
			}
			return json.Unmarshal(raw, dst)
		},
	}
}

func (c *MemoryChannel) notify(collection, id string) {
	c.mu.Lock()
	subs := make([]*memorySub, 0, len(c.subs[key(collection, id)]))
	for _, s := range c.subs[key(collection, id)] {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	doc := c.snapshot(collection, id)
	for _, s := range subs {
		if !s.stopped {
			s.onSnapshot(doc)
		}
	}
}

func (c *MemoryChannel) RunTransaction(_ context.Context, fn func(tx Tx) error) error {
	tx := &memoryTx{channel: c}
	if err := fn(tx); err != nil {
		return err
	}
	for _, w := range tx.writes {
		w()
	}
	return nil
}

// memoryTx buffers writes until the callback returns without error. Reads
// observe pre-transaction state, as they do under Firestore's
// read-before-write rule.
type memoryTx struct {
	channel *MemoryChannel
	writes  []func()
}

func (t *memoryTx) Get(collection, id string, dst any) error {
	return t.channel.Get(context.Background(), collection, id, dst)
}

func (t *memoryTx) Set(collection, id string, data any) error {
	if _, err := toFields(data); err != nil {
		return err
	}
	t.writes = append(t.writes, func() {
		_ = t.channel.Set(context.Background(), collection, id, data, false)
	})
	return nil
}

func (t *memoryTx) Update(collection, id string, fields map[string]any) error {
	t.writes = append(t.writes, func() {
		_ = t.channel.Set(context.Background(), collection, id, fields, true)
	})
	return nil
}
