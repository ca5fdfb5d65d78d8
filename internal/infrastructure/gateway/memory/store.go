// Package memory implements the gateway store as an in-process tree with
// subscriber fan-out. It backs tests and single-process runs; the redis
// store is the networked counterpart.
package memory

import (
	"context"
	"strings"
	"sync"

	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/id"
)

type subscriber struct {
	id   int
	path string
	fn   gateway.SnapshotFunc
}

// Store keeps the document tree in memory. Notifications are delivered
// synchronously in mutation order: the dispatch lock is taken before the
// tree lock, so concurrent writers fan out in the order they committed.
type Store struct {
	dispatchMu sync.Mutex

	mu     sync.Mutex
	root   map[string]any
	subs   []*subscriber
	nextID int
}

var _ gateway.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		root: make(map[string]any),
	}
}

func (s *Store) Read(ctx context.Context, path string) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.valueAt(path)
	if !ok {
		return nil, false, nil
	}
	return cloneValue(value), true, nil
}

func (s *Store) Write(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.setAt(path, cloneValue(value))
	pending := s.collectLocked(path)
	s.mu.Unlock()

	deliver(pending)
	return nil
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	for key, value := range fields {
		s.setAt(joinPath(path, key), cloneValue(value))
	}
	pending := s.collectLocked(path)
	s.mu.Unlock()

	deliver(pending)
	return nil
}

func (s *Store) Push(ctx context.Context, path string, value any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := id.NewPushKey()
	if err != nil {
		return "", err
	}

	if err := s.Write(ctx, joinPath(path, key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) Subscribe(path string, fn gateway.SnapshotFunc) (gateway.UnsubscribeFunc, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.nextID++
	sub := &subscriber{id: s.nextID, path: normalizePath(path), fn: fn}
	s.subs = append(s.subs, sub)
	value, ok := s.valueAt(sub.path)
	var initial any
	if ok {
		initial = cloneValue(value)
	}
	s.mu.Unlock()

	fn(initial)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, candidate := range s.subs {
				if candidate.id == sub.id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
		})
	}
	return unsubscribe, nil
}

type delivery struct {
	fn    gateway.SnapshotFunc
	value any
}

// collectLocked snapshots the value for every subscriber affected by a
// mutation at path: listeners at the path, below it, or above it.
func (s *Store) collectLocked(path string) []delivery {
	mutated := normalizePath(path)

	var pending []delivery
	for _, sub := range s.subs {
		if !pathsRelated(sub.path, mutated) {
			continue
		}
		value, ok := s.valueAt(sub.path)
		var snapshot any
		if ok {
			snapshot = cloneValue(value)
		}
		pending = append(pending, delivery{fn: sub.fn, value: snapshot})
	}
	return pending
}

func deliver(pending []delivery) {
	for _, d := range pending {
		d.fn(d.value)
	}
}

func (s *Store) valueAt(path string) (any, bool) {
	segments := splitPath(path)
	var current any = s.root
	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		child, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = child
	}
	if isEmptyNode(current) {
		return nil, false
	}
	return current, true
}

// setAt replaces the subtree at path. A nil value deletes the node.
func (s *Store) setAt(path string, value any) {
	segments := splitPath(path)
	if len(segments) == 0 {
		if m, ok := value.(map[string]any); ok {
			s.root = m
		} else {
			s.root = make(map[string]any)
		}
		return
	}

	node := s.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}

	last := segments[len(segments)-1]
	if value == nil {
		delete(node, last)
		return
	}
	node[last] = value
}

func isEmptyNode(value any) bool {
	node, ok := value.(map[string]any)
	return ok && len(node) == 0
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		cloned := make(map[string]any, len(typed))
		for key, child := range typed {
			cloned[key] = cloneValue(child)
		}
		return cloned
	case []any:
		cloned := make([]any, len(typed))
		for i, child := range typed {
			cloned[i] = cloneValue(child)
		}
		return cloned
	default:
		return typed
	}
}

func normalizePath(path string) string {
	return strings.Trim(path, "/")
}

func splitPath(path string) []string {
	normalized := normalizePath(path)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "/")
}

func joinPath(base, child string) string {
	base = normalizePath(base)
	if base == "" {
		return child
	}
	return base + "/" + child
}

// pathsRelated reports whether a subscriber at a sees a mutation at b:
// either path is an ancestor-or-self of the other.
func pathsRelated(a, b string) bool {
	if a == b || a == "" || b == "" {
		return true
	}
	return strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}
