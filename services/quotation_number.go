package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// draftMarker tags provisional references. Matching is case-insensitive.
const draftMarker = "draft"

// FormatReference builds a quotation reference: "{year:04d}-{seq:03d}".
// Sequences above 999 keep all their digits ("2024-1000").
func FormatReference(year, sequence int) string {
	return fmt.Sprintf("%04d-%03d", year, sequence)
}

// NextReference returns the reference that follows the highest committed
// sequence for year. lookup reports that maximum; ok=false means no number
// has been issued for the year yet and the sequence starts at 1.
//
// NextReference does no I/O. The caller owns making lookup -> commit atomic.
func NextReference(year int, lookup func() (max int, ok bool)) string {
	next := 1
	if max, ok := lookup(); ok {
		next = max + 1
	}
	return FormatReference(year, next)
}

// IsDraftReference reports whether ref is a provisional placeholder.
func IsDraftReference(ref string) bool {
	return strings.Contains(strings.ToLower(ref), draftMarker)
}

// NeedsAllocation reports whether a save must allocate a fresh reference
// instead of committing the one supplied by the caller.
func NeedsAllocation(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref == "" || IsDraftReference(ref)
}

// ParseReference splits a stored reference into year and sequence.
// ok is false for draft references and anything not shaped YEAR-NNN.
func ParseReference(ref string) (year, sequence int, ok bool) {
	if IsDraftReference(ref) {
		return 0, 0, false
	}
	yearPart, seqPart, found := strings.Cut(strings.TrimSpace(ref), "-")
	if !found || len(yearPart) != 4 || seqPart == "" {
		return 0, 0, false
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, false
	}
	for _, r := range seqPart {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
	}
	sequence, err = strconv.Atoi(seqPart)
	if err != nil || sequence <= 0 {
		return 0, 0, false
	}
	return year, sequence, true
}

// MaxSequence returns the highest sequence among refs that belong to year.
// Draft and malformed references are passed to skip (when non-nil) and left
// out of the maximum.
func MaxSequence(year int, refs []string, skip func(ref string)) (int, bool) {
	max, found := 0, false
	for _, ref := range refs {
		y, seq, ok := ParseReference(ref)
		if !ok {
			if skip != nil {
				skip(ref)
			}
			continue
		}
		if y != year {
			continue
		}
		if !found || seq > max {
			max, found = seq, true
		}
	}
	return max, found
}

// NewDraftReference returns a placeholder used for exports of unsaved work.
func NewDraftReference() string {
	return "DRAFT-" + strings.ToUpper(uuid.NewString()[:8])
}
