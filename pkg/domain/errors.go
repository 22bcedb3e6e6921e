package domain

import "errors"

// ErrDuplicateEntity is returned when registering an id that is already present.
var ErrDuplicateEntity = errors.New("duplicate entity")

// ErrInvalidID is returned when registering an entity without an id.
var ErrInvalidID = errors.New("invalid id")

// ErrInvalidStatus is returned when a status value is not part of the entity's lifecycle.
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidPhase is returned when a workflow is registered with an unusable phase list.
var ErrInvalidPhase = errors.New("invalid phase")

// ErrInsufficientHistory is returned when a prediction has no finished phase to learn from.
var ErrInsufficientHistory = errors.New("insufficient history")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrNotFound is returned by queries that cannot answer for an unknown id.
// Updates never return it: they report domain.ResultNotFound instead.
var ErrNotFound = errors.New("not found")
