package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("not found")
	// ErrOwnershipDenied will throw if the caller is not the owner of the item
	ErrOwnershipDenied = errors.New("permission denied")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("already exists")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrInvalidValue will throw if a value is outside of its allowed set, e.g. a like toggle not in {0,1}
	ErrInvalidValue = errors.New("invalid value")
	// ErrCommentsDisabled will throw when commenting on a blog that does not accept comments
	ErrCommentsDisabled = errors.New("comments are disabled")

	ErrInsertionFailed = errors.New("insertion failed")
	ErrUpdateFailed    = errors.New("update failed")
	ErrDeletionFailed  = errors.New("deletion failed")

	// ErrUpstreamDegraded is produced by the identity client and never leaves it.
	ErrUpstreamDegraded = errors.New("upstream degraded")
	// ErrCacheMiss is returned by caches when the key is absent.
	ErrCacheMiss = errors.New("cache miss")
)

// Entity names the kind of document an Error is about.
type Entity string

const (
	EntityBlog    Entity = "blog"
	EntityComment Entity = "comment"
	EntityReply   Entity = "reply"
	EntityContent Entity = "comment or reply"
	EntityLike    Entity = "like"
	EntityUser    Entity = "user"
)

// Error carries an error kind (one of the sentinels above), the entity it
// concerns and, for store failures, the underlying cause.
// errors.Is matches both the kind and the cause.
type Error struct {
	Kind   error
	Entity Entity
	ID     string
	Err    error
}

func (e *Error) Error() string {
	var msg string
	switch {
	case errors.Is(e.Kind, ErrNotFound) && e.ID != "":
		msg = fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
	case errors.Is(e.Kind, ErrOwnershipDenied):
		msg = fmt.Sprintf("permission denied, you can only modify your own %s", e.Entity)
	case e.Entity != "":
		msg = fmt.Sprintf("%s %s", e.Entity, e.Kind)
	default:
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound reports that the entity with the given id does not exist.
func NotFound(entity Entity, id string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

// Denied reports that the caller does not own the entity.
func Denied(entity Entity, id string) error {
	return &Error{Kind: ErrOwnershipDenied, Entity: entity, ID: id}
}

// Failed reports a store write of the given kind that did not take effect.
func Failed(kind error, entity Entity, id string, cause error) error {
	return &Error{Kind: kind, Entity: entity, ID: id, Err: cause}
}
