package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// DefaultReferenceAttempts bounds lookup/commit rounds when references collide.
const DefaultReferenceAttempts = 5

var (
	// ErrAllocationUnavailable means every attempt lost the race for a
	// fresh reference.
	ErrAllocationUnavailable = errors.New("could not allocate a quotation reference, please retry")
	// ErrReferenceTaken means a caller-chosen reference is already stored.
	ErrReferenceTaken = errors.New("quotation reference already exists")
)

// QuotationSaver runs the lookup -> compute -> commit cycle that gives each
// saved quotation a unique YEAR-NNN reference.
type QuotationSaver struct {
	repo        QuotationRepository
	maxAttempts int
	now         func() time.Time

	// mu serializes saves within this process. The unique index on
	// reference_number still guards against other processes.
	mu sync.Mutex
}

// NewQuotationSaver returns a saver over repo. maxAttempts below 1 falls
// back to DefaultReferenceAttempts.
func NewQuotationSaver(repo QuotationRepository, maxAttempts int) *QuotationSaver {
	if maxAttempts < 1 {
		maxAttempts = DefaultReferenceAttempts
	}
	return &QuotationSaver{repo: repo, maxAttempts: maxAttempts, now: time.Now}
}

// Save persists q. An empty or draft reference is replaced by the next free
// reference for the current year; any other reference is committed as given.
// On failure q keeps the reference it came in with.
func (s *QuotationSaver) Save(q *Quotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !NeedsAllocation(q.ReferenceNumber) {
		status, err := s.repo.Create(q)
		if err != nil {
			return err
		}
		if status == CommitConflict {
			return fmt.Errorf("%w: %s", ErrReferenceTaken, q.ReferenceNumber)
		}
		return nil
	}

	original := q.ReferenceNumber
	year := s.now().Year()
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		max, ok, err := s.repo.FindMaxSequence(year)
		if err != nil {
			q.ReferenceNumber = original
			return fmt.Errorf("failed to read committed references: %w", err)
		}

		q.ReferenceNumber = NextReference(year, func() (int, bool) { return max, ok })
		status, err := s.repo.Create(q)
		if err != nil {
			q.ReferenceNumber = original
			return err
		}
		if status == CommitOK {
			return nil
		}
		log.Printf("quotation_save: reference %s taken, retrying (attempt %d of %d)", q.ReferenceNumber, attempt, s.maxAttempts)
	}

	q.ReferenceNumber = original
	return ErrAllocationUnavailable
}

// PeekNextReference reports the reference the next allocating save would
// try, without reserving it.
func (s *QuotationSaver) PeekNextReference() (string, error) {
	year := s.now().Year()
	max, ok, err := s.repo.FindMaxSequence(year)
	if err != nil {
		return "", fmt.Errorf("failed to read committed references: %w", err)
	}
	return NextReference(year, func() (int, bool) { return max, ok }), nil
}
