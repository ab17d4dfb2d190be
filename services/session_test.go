package services

import (
	"errors"
	"sync"
	"testing"
)

func TestSessionStore_CreateAndWith(t *testing.T) {
	lib := testLibrary(t)
	cat, _ := lib.Catalog(VendorPasha)
	store := NewSessionStore()

	id := store.Create(VendorPasha, cat, lib.Rules, DefaultTerms)

	err := store.With(id, func(s *Session) error {
		if s.ID != id || s.Vendor != VendorPasha || s.Terms != DefaultTerms {
			t.Errorf("unexpected session %+v", s)
		}
		item, _ := cat.Item("p-tank")
		s.Engine.Select(item, 2, nil, "")
		return nil
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}

	store.With(id, func(s *Session) error {
		if s.Engine.Len() != 1 {
			t.Errorf("selection not kept between calls")
		}
		return nil
	})
}

func TestSessionStore_UnknownID(t *testing.T) {
	store := NewSessionStore()
	err := store.With("nope", func(*Session) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("With() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	lib := testLibrary(t)
	cat, _ := lib.Catalog(VendorPasha)
	store := NewSessionStore()
	id := store.Create(VendorPasha, cat, lib.Rules, "")

	store.Delete(id)
	store.Delete(id)

	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestSessionStore_SerializesCallsPerSession(t *testing.T) {
	lib := testLibrary(t)
	cat, _ := lib.Catalog(VendorSchroeder)
	store := NewSessionStore()
	id := store.Create(VendorSchroeder, cat, lib.Rules, "")
	tank, _ := cat.Item("acc-tank")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.With(id, func(s *Session) error {
				cur, _ := s.Engine.Selection("acc-tank")
				s.Engine.Select(tank, cur.Quantity+1, nil, "")
				return nil
			})
		}()
	}
	wg.Wait()

	store.With(id, func(s *Session) error {
		// The first select of an absent item starts from quantity 0 + 1.
		if got, _ := s.Engine.Selection("acc-tank"); got.Quantity != 50 {
			t.Errorf("quantity = %d, want 50", got.Quantity)
		}
		return nil
	})
}

func TestSession_Quotation(t *testing.T) {
	lib := testLibrary(t)
	cat, _ := lib.Catalog(VendorSchroeder)
	s := &Session{
		Vendor:          VendorSchroeder,
		Engine:          NewConfigurator(VendorSchroeder, cat, lib.Rules),
		DiscountPercent: dec("140"),
		Customer:        ClientDetails{Name: "Client"},
	}
	env, _ := cat.Item("env-g30")
	s.Engine.Select(env, 1, nil, "")

	q := s.Quotation()
	if !q.DiscountPercent.Equal(dec("100")) {
		t.Errorf("discount = %s, want clamped 100", q.DiscountPercent)
	}
	if !q.Total.IsZero() {
		t.Errorf("total = %s, want 0", q.Total)
	}
}
