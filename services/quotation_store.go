package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// QuotationsCollection is the PocketBase collection holding saved quotations.
const QuotationsCollection = "quotations"

// ErrQuotationNotFound is returned when no stored quotation matches a lookup.
var ErrQuotationNotFound = errors.New("quotation not found")

// CommitStatus is the outcome of an attempt to persist a quotation.
type CommitStatus int

const (
	// CommitOK means the quotation was stored.
	CommitOK CommitStatus = iota
	// CommitConflict means another quotation already holds the reference.
	CommitConflict
)

func (s CommitStatus) String() string {
	switch s {
	case CommitOK:
		return "ok"
	case CommitConflict:
		return "conflict"
	}
	return fmt.Sprintf("CommitStatus(%d)", int(s))
}

// QuotationRepository is what the saver needs from storage.
type QuotationRepository interface {
	// FindMaxSequence returns the highest committed sequence for year.
	FindMaxSequence(year int) (max int, ok bool, err error)
	// Create stores q. A reference already in use yields CommitConflict
	// with a nil error.
	Create(q *Quotation) (CommitStatus, error)
}

// QuotationStore persists quotations in PocketBase.
type QuotationStore struct {
	app core.App
}

// NewQuotationStore returns a store over the quotations collection.
func NewQuotationStore(app core.App) *QuotationStore {
	return &QuotationStore{app: app}
}

// FindMaxSequence scans the references of year. Draft and malformed
// references are logged and skipped.
func (s *QuotationStore) FindMaxSequence(year int) (int, bool, error) {
	prefix := fmt.Sprintf("%04d-", year)
	records, err := s.app.FindRecordsByFilter(
		QuotationsCollection,
		"reference_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to query references for %d: %w", year, err)
	}

	refs := make([]string, 0, len(records))
	for _, r := range records {
		refs = append(refs, r.GetString("reference_number"))
	}
	max, ok := MaxSequence(year, refs, func(ref string) {
		log.Printf("quotation_store: skipping reference %q while allocating for %d", ref, year)
	})
	return max, ok, nil
}

// Create saves q as a new record and fills q.ID and q.CreatedAt.
func (s *QuotationStore) Create(q *Quotation) (CommitStatus, error) {
	col, err := s.app.FindCollectionByNameOrId(QuotationsCollection)
	if err != nil {
		return CommitOK, fmt.Errorf("quotations collection not found: %w", err)
	}

	record := core.NewRecord(col)
	record.Set("reference_number", q.ReferenceNumber)
	record.Set("vendor", string(q.Vendor))
	record.Set("customer", q.Customer)
	record.Set("items", q.Lines)
	record.Set("discount_percent", q.DiscountPercent.InexactFloat64())
	record.Set("total", q.Total.StringFixed(2))
	record.Set("terms", q.Terms)

	if err := s.app.Save(record); err != nil {
		if isUniqueViolation(err) {
			return CommitConflict, nil
		}
		return CommitOK, fmt.Errorf("failed to save quotation %s: %w", q.ReferenceNumber, err)
	}

	q.ID = record.Id
	q.CreatedAt = record.GetDateTime("created").Time()
	return CommitOK, nil
}

// isUniqueViolation recognises both the record validator's and SQLite's
// rejection of a duplicate reference_number.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "validation_not_unique") ||
		strings.Contains(msg, "must be unique")
}

// FindByID returns a stored quotation.
func (s *QuotationStore) FindByID(id string) (*Quotation, error) {
	record, err := s.app.FindRecordById(QuotationsCollection, id)
	if err != nil {
		return nil, ErrQuotationNotFound
	}
	return quotationFromRecord(record)
}

// FindByReferenceAndDate returns the quotation with reference ref created on
// date (YYYY-MM-DD, UTC).
func (s *QuotationStore) FindByReferenceAndDate(ref, date string) (*Quotation, error) {
	records, err := s.app.FindRecordsByFilter(
		QuotationsCollection,
		"reference_number = {:ref}",
		"-created",
		0,
		0,
		map[string]any{"ref": strings.TrimSpace(ref)},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up quotation %s: %w", ref, err)
	}
	for _, r := range records {
		if r.GetDateTime("created").Time().UTC().Format("2006-01-02") == date {
			return quotationFromRecord(r)
		}
	}
	return nil, ErrQuotationNotFound
}

// ListAll returns every quotation, newest first.
func (s *QuotationStore) ListAll() ([]*Quotation, error) {
	records, err := s.app.FindAllRecords(QuotationsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}

	out := make([]*Quotation, 0, len(records))
	for _, r := range records {
		q, err := quotationFromRecord(r)
		if err != nil {
			log.Printf("quotation_store: skipping record %s: %v", r.Id, err)
			continue
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteByID removes a stored quotation.
func (s *QuotationStore) DeleteByID(id string) error {
	record, err := s.app.FindRecordById(QuotationsCollection, id)
	if err != nil {
		return ErrQuotationNotFound
	}
	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete quotation %s: %w", id, err)
	}
	return nil
}

func quotationFromRecord(r *core.Record) (*Quotation, error) {
	q := &Quotation{
		ID:              r.Id,
		ReferenceNumber: r.GetString("reference_number"),
		Vendor:          Vendor(r.GetString("vendor")),
		DiscountPercent: decimal.NewFromFloat(r.GetFloat("discount_percent")),
		Terms:           r.GetString("terms"),
		CreatedAt:       r.GetDateTime("created").Time(),
	}
	if err := r.UnmarshalJSONField("customer", &q.Customer); err != nil {
		return nil, fmt.Errorf("invalid customer on %s: %w", r.Id, err)
	}
	if err := r.UnmarshalJSONField("items", &q.Lines); err != nil {
		return nil, fmt.Errorf("invalid items on %s: %w", r.Id, err)
	}
	total, err := decimal.NewFromString(r.GetString("total"))
	if err != nil {
		return nil, fmt.Errorf("invalid total on %s: %w", r.Id, err)
	}
	q.Total = total
	return q, nil
}
