// Package cache provides the TTL cache used to memoize derived views such as
// the dashboard category tallies.  Two backends exist: an in-process map for
// the default demo deployment and a Redis-backed cache for multi-instance
// setups.  Values cross the cache boundary as JSON.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss = errors.New(errors.CodeNotFound, "cache miss")

	// ErrSerializationFailed is returned when a value cannot cross the
	// serialization boundary.
	ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "cache serialization failed")
)

// Cache is the read-through TTL cache contract.
type Cache interface {
	// Get unmarshals the cached value for key into dest.  Returns
	// ErrCacheMiss when absent.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value under key.  A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.  Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// GetOrSet returns the cached value for key, invoking loader on a miss
	// and storing the loaded value before returning it.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error

	// Ping reports backend reachability.
	Ping(ctx context.Context) error
}

// Serializer converts values to and from their cached byte form.
type Serializer interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonSerializer struct{}

func (jsonSerializer) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonSerializer) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

// NewJSONSerializer returns the default JSON serializer.
func NewJSONSerializer() Serializer { return jsonSerializer{} }
