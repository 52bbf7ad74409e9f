package hermadata

import (
	"testing"
	"time"
)

func TestPage_AppendItem(t *testing.T) {
	page := Page[Adopter]{Total: 2, Items: []Adopter{{ID: 1}, {ID: 2}}}

	got := page.AppendItem(Adopter{ID: 3, Name: "Mario", Surname: "Rossi"})
	appended, ok := got.(Page[Adopter])
	if !ok {
		t.Fatalf("AppendItem returned %T, want Page[Adopter]", got)
	}
	if appended.Total != 3 || len(appended.Items) != 3 || appended.Items[2].ID != 3 {
		t.Fatalf("appended page = %#v", appended)
	}
	// The original page must be untouched (cache data is read-only).
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("original page mutated: %#v", page)
	}

	// Wrong item type leaves the page as-is.
	same := page.AppendItem(42).(Page[Adopter])
	if same.Total != 2 || len(same.Items) != 2 {
		t.Fatalf("mistyped append changed page: %#v", same)
	}
}

func TestPage_ValidateChecksItems(t *testing.T) {
	bad := Page[Animal]{Total: 1, Items: []Animal{{ID: 0, RaceID: ""}}}
	if err := bad.Validate(); err == nil {
		t.Fatal("Validate accepted an invalid item")
	}

	window := Page[Animal]{Total: 0, Items: []Animal{{ID: 1, RaceID: "C"}}}
	if err := window.Validate(); err == nil {
		t.Fatal("Validate accepted a window larger than total")
	}

	good := Page[Animal]{Total: 5, Items: []Animal{{ID: 1, RaceID: "C"}}}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate rejected a valid page: %v", err)
	}
}

func TestAnimal_ParsedDates(t *testing.T) {
	a := Animal{EntryDate: "2025-03-10", ExitDate: ""}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := a.ParsedEntryDate(); !got.Equal(want) {
		t.Fatalf("ParsedEntryDate = %v, want %v", got, want)
	}
	if got := a.ParsedExitDate(); !got.IsZero() {
		t.Fatalf("ParsedExitDate = %v, want zero for resident animal", got)
	}

	rfc := Animal{EntryDate: "2025-03-10T09:30:00Z"}
	if got := rfc.ParsedEntryDate(); got.IsZero() {
		t.Fatal("ParsedEntryDate rejected RFC3339 timestamp")
	}

	garbage := Animal{EntryDate: "10/03/2025"}
	if got := garbage.ParsedEntryDate(); !got.IsZero() {
		t.Fatalf("ParsedEntryDate = %v for malformed input, want zero", got)
	}
}

func TestSearchKeys_DistinguishQueries(t *testing.T) {
	base := AnimalQuery{PageQuery: PageQuery{FromIndex: 0, ToIndex: 20}}
	nextPage := AnimalQuery{PageQuery: PageQuery{FromIndex: 20, ToIndex: 40}}
	filtered := base
	filtered.RaceID = "C"

	if AnimalSearchKey(base).String() == AnimalSearchKey(nextPage).String() {
		t.Fatal("different windows share a cache key")
	}
	if AnimalSearchKey(base).String() == AnimalSearchKey(filtered).String() {
		t.Fatal("different filters share a cache key")
	}
	if AnimalSearchKey(base).String() != AnimalSearchKey(base).String() {
		t.Fatal("identical queries produce different cache keys")
	}
	if AnimalSearchKey(base).Kind() != KindAnimalSearch {
		t.Fatalf("kind = %q, want %q", AnimalSearchKey(base).Kind(), KindAnimalSearch)
	}
}
