package queue

import "errors"

var (
	// ErrNotFound means the referenced entry does not exist.
	ErrNotFound = errors.New("queue entry not found")

	// ErrInvalidReference means the patient or physician reference on an
	// enqueue request does not resolve to an existing record.
	ErrInvalidReference = errors.New("invalid patient or physician reference")

	// ErrInvalidExam means a requested exam is outside the vocabulary.
	ErrInvalidExam = errors.New("exam not in vocabulary")

	// ErrInvalidTransition means the operation is not valid for the entry's
	// current status. The entry is left untouched.
	ErrInvalidTransition = errors.New("operation not valid for current status")

	// ErrAlreadyFinalized means finalize was called on an entry already
	// DONE. Informational; the entry is unchanged.
	ErrAlreadyFinalized = errors.New("entry already finalized")

	// ErrConcurrentModification means the transition lost a race with
	// another writer. The caller may retry.
	ErrConcurrentModification = errors.New("entry modified concurrently")

	// ErrProfileNotFound means the caller has no bound physician profile.
	// Distinct from an empty queue.
	ErrProfileNotFound = errors.New("physician profile not found")

	// ErrNotAssigned means the caller is not the entry's target physician.
	ErrNotAssigned = errors.New("entry not assigned to this physician")
)
