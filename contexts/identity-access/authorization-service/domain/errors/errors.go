package errors

import "errors"

var (
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidCatalog    = errors.New("invalid event catalog")
)
