package repositories

import "errors"

// ErrNotFound is returned by Find* methods when no document matches.
// MongoDB implementations translate mongo.ErrNoDocuments into this so the
// service layer never depends on driver error values.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when an insert violates a unique index
// (e.g. creating a promo code whose code already exists).
var ErrDuplicate = errors.New("duplicate document")
