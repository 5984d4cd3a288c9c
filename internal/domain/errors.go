package domain

import "errors"

var (
	// ErrComplaintNotFound signals an absent record; point lookups treat
	// absence as a normal outcome distinct from store faults.
	ErrComplaintNotFound = errors.New("complaint not found")

	// ErrDuplicateComplaint signals a store-level violation of the
	// (productId, complainantId) uniqueness constraint.
	ErrDuplicateComplaint = errors.New("complaint already exists for product and complainant")
)
