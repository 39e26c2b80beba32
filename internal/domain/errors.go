package domain

import "errors"

var (
	// ErrJobNotFound is returned when a manual trigger names an unregistered job
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when a job name is registered twice
	ErrDuplicateJob = errors.New("duplicate job name")

	// ErrJobAlreadyRunning is returned when a job is triggered while an execution is in flight
	ErrJobAlreadyRunning = errors.New("job already running")

	// ErrForbidden is returned when the caller lacks the administrative role
	ErrForbidden = errors.New("administrative role required")

	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned when a sale would reserve more units than are on hand
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrSaleFinalized is returned when a finalized sale is finalized again
	ErrSaleFinalized = errors.New("sale already finalized")

	// ErrInvalidParameter is returned for malformed trigger parameters
	ErrInvalidParameter = errors.New("invalid parameter")
)
