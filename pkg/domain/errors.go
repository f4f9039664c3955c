package domain

import "errors"

// ErrInvalidCommand is returned when a command envelope is malformed (e.g. an empty type).
var ErrInvalidCommand = errors.New("invalid command")

// ErrUnknownCommand is returned when no handler is registered for a command type.
var ErrUnknownCommand = errors.New("unknown command")

// ErrInvalidPayload is returned when a payload cannot be decoded into its typed form.
var ErrInvalidPayload = errors.New("invalid payload")

// ErrShapeNotFound is returned when an id does not resolve to a shape in the store.
var ErrShapeNotFound = errors.New("shape not found")

// ErrDocumentNotFound is returned when a document id cannot be found in the scene store.
var ErrDocumentNotFound = errors.New("document not found")
