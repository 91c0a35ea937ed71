// Package storage implements the key-value backends the task list persists to
// and the adapter that stores the task sequence under a single key.
package storage

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// KV is a string key-value store in the spirit of the browser's localStorage.
type KV interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // file backend root
	RedisURL string
}

// Open builds the backend named by opts.Backend, wrapped with tracing.
// The returned close function releases backend resources.
func Open(opts Options) (KV, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		kv, err := NewFileKV(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		return Traced(kv, BackendFile), noop, nil
	case BackendRedis:
		kv, err := NewRedisKVFromURL(opts.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return Traced(kv, BackendRedis), kv.Close, nil
	case BackendMemory:
		return Traced(NewMemoryKV(), BackendMemory), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}

const tracerName = "todolist/storage"

type tracedKV struct {
	next    KV
	backend string
	tracer  trace.Tracer
}

// Traced wraps kv so each call is recorded as a span on the global tracer
// provider.
func Traced(kv KV, backend string) KV {
	return &tracedKV{next: kv, backend: backend, tracer: otel.Tracer(tracerName)}
}

func (t *tracedKV) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "kv."+op, trace.WithAttributes(
		attribute.String("kv.backend", t.backend),
		attribute.String("kv.key", key),
	))
}

func (t *tracedKV) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := t.start(ctx, "get", key)
	defer span.End()

	value, ok, err := t.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("kv.hit", ok), attribute.Int("kv.bytes", len(value)))
	recordErr(span, err)
	return value, ok, err
}

func (t *tracedKV) Set(ctx context.Context, key, value string) error {
	ctx, span := t.start(ctx, "set", key)
	defer span.End()

	span.SetAttributes(attribute.Int("kv.bytes", len(value)))
	err := t.next.Set(ctx, key, value)
	recordErr(span, err)
	return err
}

func (t *tracedKV) Delete(ctx context.Context, key string) error {
	ctx, span := t.start(ctx, "delete", key)
	defer span.End()

	err := t.next.Delete(ctx, key)
	recordErr(span, err)
	return err
}

func recordErr(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
