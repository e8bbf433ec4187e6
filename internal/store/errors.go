package store

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrLoad           = errors.New("config load failed")
	ErrKeyNotFound    = errors.New("key not found")
	ErrNotTraversable = errors.New("value is not traversable")
	ErrInvalidValue   = errors.New("invalid value")
	ErrPersistence    = errors.New("config save failed")
)

// NotFoundKind tells which lookup a KeyNotFoundError came from.
type NotFoundKind string

const (
	MissingPath  NotFoundKind = "path"
	MissingAgent NotFoundKind = "agent"
	MissingKey   NotFoundKind = "key"
)

// LoadError reports a persisted document that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// KeyNotFoundError reports a missing path name, agent or dotted key.
type KeyNotFoundError struct {
	Kind NotFoundKind
	Key  string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in config", e.Kind, e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }

// NotTraversableError reports a dotted key whose intermediate segment names
// a value that is not a mapping.
type NotTraversableError struct {
	Key     string // full dotted key
	Segment string // dotted prefix that resolved to a non-mapping
	Found   Kind
}

func (e *NotTraversableError) Error() string {
	return fmt.Sprintf("cannot traverse %q: %q is a %s, not a mapping", e.Key, e.Segment, e.Found)
}

func (e *NotTraversableError) Is(target error) bool { return target == ErrNotTraversable }

// InvalidValueError reports a malformed argument passed to a setter.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Field == "" {
		return "invalid value: " + e.Reason
	}
	return fmt.Sprintf("invalid value for %q: %s", e.Field, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// PersistenceError reports a failed save.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving config %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
