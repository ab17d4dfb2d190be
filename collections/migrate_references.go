package collections

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// MigrateReferenceIndex adds the unique reference index to a quotations
// collection created before the index existed. Records sharing a reference
// are kept; every copy after the oldest is retagged "{ref}-draft-{n}" so the
// index can be built. It is idempotent.
func MigrateReferenceIndex(app core.App) error {
	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		return fmt.Errorf("quotations collection not found: %w", err)
	}
	if col.GetIndex(QuotationReferenceIndex) != "" {
		return nil
	}

	records, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("failed to load quotations: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		// Oldest first so the original holder keeps its reference.
		byRef := map[string][]*core.Record{}
		var order []string
		for _, r := range records {
			ref := strings.TrimSpace(r.GetString("reference_number"))
			if _, ok := byRef[ref]; !ok {
				order = append(order, ref)
			}
			byRef[ref] = append(byRef[ref], r)
		}

		for _, ref := range order {
			dupes := byRef[ref]
			sortByCreated(dupes)
			for n, r := range dupes[1:] {
				retagged := fmt.Sprintf("%s-draft-%d", ref, n+1)
				r.Set("reference_number", retagged)
				if err := txApp.Save(r); err != nil {
					return fmt.Errorf("failed to retag quotation %s: %w", r.Id, err)
				}
				log.Printf("collections: quotation %s shared reference %q, retagged %q", r.Id, ref, retagged)
			}
		}

		col.AddIndex(QuotationReferenceIndex, true, "reference_number", "")
		if err := txApp.Save(col); err != nil {
			return fmt.Errorf("failed to add reference index: %w", err)
		}
		log.Printf("collections: added %s", QuotationReferenceIndex)
		return nil
	})
}

func sortByCreated(records []*core.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GetDateTime("created").Time().Before(records[j].GetDateTime("created").Time())
	})
}
