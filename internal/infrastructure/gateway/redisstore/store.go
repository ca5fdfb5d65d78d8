// Package redisstore implements the gateway store on Redis. Every leaf of
// the document tree is a JSON value keyed by its path; parent nodes track
// their children in sets so subtrees can be reassembled on read. Change
// notifications travel over pub/sub channels, one per path, published for a
// mutated leaf and every ancestor of it.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/id"
	"chamado/internal/shared/logger"
)

const (
	leafPrefix     = "rtdb:leaf:"
	childrenPrefix = "rtdb:children:"
	channelPrefix  = "rtdb:ch:"
)

type Store struct {
	client *redis.Client
	logger logger.Interface
}

var _ gateway.Store = (*Store)(nil)

func NewStore(client *redis.Client, log logger.Interface) *Store {
	return &Store{
		client: client,
		logger: log,
	}
}

func (s *Store) Read(ctx context.Context, path string) (any, bool, error) {
	return s.readValue(ctx, normalizePath(path))
}

func (s *Store) Write(ctx context.Context, path string, value any) error {
	normalized := normalizePath(path)
	touched := make(map[string]struct{})

	if err := s.deleteSubtree(ctx, normalized, touched); err != nil {
		return err
	}

	if value == nil {
		if err := s.unlinkFromParent(ctx, normalized); err != nil {
			return err
		}
		return s.publish(ctx, touched)
	}

	if err := s.linkAncestry(ctx, normalized); err != nil {
		return err
	}
	if err := s.writeValue(ctx, normalized, value, touched); err != nil {
		return err
	}
	return s.publish(ctx, touched)
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	normalized := normalizePath(path)
	touched := make(map[string]struct{})

	if err := s.linkAncestry(ctx, normalized); err != nil {
		return err
	}
	for key, value := range fields {
		child := joinPath(normalized, key)
		if err := s.deleteSubtree(ctx, child, touched); err != nil {
			return err
		}
		if value == nil {
			if err := s.unlinkFromParent(ctx, child); err != nil {
				return err
			}
			continue
		}
		if err := s.linkAncestry(ctx, child); err != nil {
			return err
		}
		if err := s.writeValue(ctx, child, value, touched); err != nil {
			return err
		}
	}
	return s.publish(ctx, touched)
}

func (s *Store) Push(ctx context.Context, path string, value any) (string, error) {
	key, err := id.NewPushKey()
	if err != nil {
		return "", err
	}

	if err := s.Write(ctx, joinPath(normalizePath(path), key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) Subscribe(path string, fn gateway.SnapshotFunc) (gateway.UnsubscribeFunc, error) {
	normalized := normalizePath(path)
	ctx, cancel := context.WithCancel(context.Background())

	pubsub := s.client.Subscribe(ctx, channelPrefix+normalized)
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", normalized, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		s.notifyCurrent(ctx, normalized, fn)
		for range pubsub.Channel() {
			s.notifyCurrent(ctx, normalized, fn)
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancel()
			if err := pubsub.Close(); err != nil {
				s.logger.Warnw("failed to close pubsub", "path", normalized, "error", err)
			}
			<-done
		})
	}
	return unsubscribe, nil
}

func (s *Store) notifyCurrent(ctx context.Context, path string, fn gateway.SnapshotFunc) {
	value, ok, err := s.readValue(ctx, path)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warnw("failed to read snapshot", "path", path, "error", err)
		}
		return
	}
	if !ok {
		fn(nil)
		return
	}
	fn(value)
}

func (s *Store) readValue(ctx context.Context, path string) (any, bool, error) {
	data, err := s.client.Get(ctx, leafPrefix+path).Result()
	if err == nil {
		var value any
		if err := json.Unmarshal([]byte(data), &value); err != nil {
			return nil, false, fmt.Errorf("failed to unmarshal value at %s: %w", path, err)
		}
		return value, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	children, err := s.client.SMembers(ctx, childrenPrefix+path).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read children of %s: %w", path, err)
	}
	if len(children) == 0 {
		return nil, false, nil
	}

	node := make(map[string]any, len(children))
	for _, child := range children {
		value, ok, err := s.readValue(ctx, joinPath(path, child))
		if err != nil {
			return nil, false, err
		}
		if ok {
			node[child] = value
		}
	}
	if len(node) == 0 {
		return nil, false, nil
	}
	return node, true, nil
}

func (s *Store) writeValue(ctx context.Context, path string, value any, touched map[string]struct{}) error {
	if node, ok := value.(map[string]any); ok {
		for key, child := range node {
			childPath := joinPath(path, key)
			if err := s.client.SAdd(ctx, childrenPrefix+path, key).Err(); err != nil {
				return fmt.Errorf("failed to index child %s: %w", childPath, err)
			}
			if err := s.writeValue(ctx, childPath, child, touched); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value at %s: %w", path, err)
	}
	if err := s.client.Set(ctx, leafPrefix+path, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	touched[path] = struct{}{}
	return nil
}

func (s *Store) deleteSubtree(ctx context.Context, path string, touched map[string]struct{}) error {
	children, err := s.client.SMembers(ctx, childrenPrefix+path).Result()
	if err != nil {
		return fmt.Errorf("failed to read children of %s: %w", path, err)
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, joinPath(path, child), touched); err != nil {
			return err
		}
	}
	if len(children) > 0 {
		if err := s.client.Del(ctx, childrenPrefix+path).Err(); err != nil {
			return fmt.Errorf("failed to delete child index of %s: %w", path, err)
		}
	}

	removed, err := s.client.Del(ctx, leafPrefix+path).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	if removed > 0 {
		touched[path] = struct{}{}
	}
	return nil
}

// linkAncestry registers the path in the child index of each ancestor so
// subtree reads above it can find it.
func (s *Store) linkAncestry(ctx context.Context, path string) error {
	segments := splitPath(path)
	parent := ""
	for _, segment := range segments {
		if err := s.client.SAdd(ctx, childrenPrefix+parent, segment).Err(); err != nil {
			return fmt.Errorf("failed to index %s under %s: %w", segment, parent, err)
		}
		parent = joinPath(parent, segment)
	}
	return nil
}

func (s *Store) unlinkFromParent(ctx context.Context, path string) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil
	}
	parent := strings.Join(segments[:len(segments)-1], "/")
	last := segments[len(segments)-1]
	if err := s.client.SRem(ctx, childrenPrefix+parent, last).Err(); err != nil {
		return fmt.Errorf("failed to unlink %s from %s: %w", last, parent, err)
	}
	return nil
}

// publish fans a change notification out to the channel of every touched
// leaf and all of its ancestors, deduplicated.
func (s *Store) publish(ctx context.Context, touched map[string]struct{}) error {
	channels := make(map[string]struct{})
	for leaf := range touched {
		channels[""] = struct{}{}
		segments := splitPath(leaf)
		current := ""
		for _, segment := range segments {
			current = joinPath(current, segment)
			channels[current] = struct{}{}
		}
	}

	for channel := range channels {
		if err := s.client.Publish(ctx, channelPrefix+channel, "1").Err(); err != nil {
			return fmt.Errorf("failed to publish change on %s: %w", channel, err)
		}
	}
	return nil
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
	if base == "" {
		return child
	}
	return base + "/" + child
}
