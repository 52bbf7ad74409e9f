package hermadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// lookupServer serves every lookup endpoint the intake and adopter forms
// draw their dropdowns from.
func lookupServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/races":
			_ = json.NewEncoder(w).Encode([]Race{{ID: "C", Name: "Cane"}, {ID: "G", Name: "Gatto"}})
		case "/breeds":
			race := r.URL.Query().Get("race_id")
			_ = json.NewEncoder(w).Encode([]Breed{{ID: 1, Name: "Meticcio", RaceID: race}})
		case "/util/provinces":
			_ = json.NewEncoder(w).Encode([]Province{{Code: "MI", Name: "Milano"}})
		case "/util/cities":
			prov := r.URL.Query().Get("provincia")
			_ = json.NewEncoder(w).Encode([]City{{Code: "F205", Name: "Milano", ProvinceCode: prov}})
		case "/document-kinds":
			_ = json.NewEncoder(w).Encode([]DocKind{{ID: 1, Code: "LS", Name: "Libretto sanitario", Uploadable: true}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_LookupEndpoints(t *testing.T) {
	t.Parallel()

	server := lookupServer(t)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	races, err := c.FetchRaces(ctx)
	if err != nil {
		t.Fatalf("FetchRaces returned error: %v", err)
	}
	if len(races) != 2 || races[0].ID != "C" || races[1].Name != "Gatto" {
		t.Fatalf("races = %#v", races)
	}

	breeds, err := c.FetchBreeds(ctx, "G")
	if err != nil {
		t.Fatalf("FetchBreeds returned error: %v", err)
	}
	if len(breeds) != 1 || breeds[0].RaceID != "G" {
		t.Fatalf("breeds = %#v, want the race_id parameter echoed", breeds)
	}

	provinces, err := c.FetchProvinces(ctx)
	if err != nil {
		t.Fatalf("FetchProvinces returned error: %v", err)
	}
	if len(provinces) != 1 || provinces[0].Code != "MI" {
		t.Fatalf("provinces = %#v", provinces)
	}

	cities, err := c.FetchCities(ctx, "MI")
	if err != nil {
		t.Fatalf("FetchCities returned error: %v", err)
	}
	if len(cities) != 1 || cities[0].ProvinceCode != "MI" {
		t.Fatalf("cities = %#v, want the provincia parameter echoed", cities)
	}

	kinds, err := c.FetchDocKinds(ctx)
	if err != nil {
		t.Fatalf("FetchDocKinds returned error: %v", err)
	}
	if len(kinds) != 1 || kinds[0].Code != "LS" || !kinds[0].Uploadable {
		t.Fatalf("document kinds = %#v", kinds)
	}
}

func TestLookupKeys_DistinctPerParameter(t *testing.T) {
	if BreedsKey("C").String() == BreedsKey("G").String() {
		t.Fatal("breed lists of different races share a cache key")
	}
	if CitiesKey("MI").String() == CitiesKey("RM").String() {
		t.Fatal("city lists of different provinces share a cache key")
	}
	if RacesKey().Kind() != KindRaces {
		t.Fatalf("races kind = %q, want %q", RacesKey().Kind(), KindRaces)
	}
	if ProvincesKey().String() == DocKindsKey().String() {
		t.Fatal("unparameterized lookups share a cache key")
	}
}
