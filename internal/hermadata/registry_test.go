package hermadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClient_FetchAndUpdateAdopter(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotUpdate AdopterInput
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/adopters/7" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		gotMethod = r.Method
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(Adopter{ID: 7, Name: "Maria", Surname: "Rossi", CityCode: "F205"})
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&gotUpdate)
			_ = json.NewEncoder(w).Encode(Adopter{
				ID: 7, Name: gotUpdate.Name, Surname: gotUpdate.Surname, Phone: gotUpdate.Phone,
			})
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	adopter, err := c.FetchAdopter(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchAdopter returned error: %v", err)
	}
	if adopter.ID != 7 || adopter.Surname != "Rossi" {
		t.Fatalf("adopter = %#v", adopter)
	}

	updated, err := c.UpdateAdopter(context.Background(), 7, AdopterInput{
		Name: "Maria", Surname: "Rossi", Phone: "02 1234567",
	})
	if err != nil {
		t.Fatalf("UpdateAdopter returned error: %v", err)
	}
	if gotMethod != http.MethodPut || gotUpdate.Phone != "02 1234567" {
		t.Fatalf("update request: method=%q body=%#v", gotMethod, gotUpdate)
	}
	if updated.Phone != "02 1234567" {
		t.Fatalf("updated adopter = %#v", updated)
	}
}

func TestClient_VetRegistry(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotCreate VetInput
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vets" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			gotQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(Page[Vet]{
				Total: 1,
				Items: []Vet{{ID: 3, Name: "Anna", Surname: "Verdi", LicenseNo: "MI-4411"}},
			})
		case http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&gotCreate)
			_ = json.NewEncoder(w).Encode(Vet{
				ID: 4, Name: gotCreate.Name, Surname: gotCreate.Surname, LicenseNo: gotCreate.LicenseNo,
			})
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	page, err := c.SearchVets(context.Background(), VetQuery{
		PageQuery: PageQuery{FromIndex: 0, ToIndex: 10, SortField: "surname", SortOrder: "asc"},
		NameLike:  "ver",
	})
	if err != nil {
		t.Fatalf("SearchVets returned error: %v", err)
	}
	if page.Total != 1 || page.Items[0].LicenseNo != "MI-4411" {
		t.Fatalf("vet page = %#v", page)
	}
	if gotQuery.Get("from_index") != "0" || gotQuery.Get("to_index") != "10" || gotQuery.Get("name") != "ver" {
		t.Fatalf("vet search query = %v, want pagination and filter encoded", gotQuery)
	}

	vet, err := c.CreateVet(context.Background(), VetInput{
		Name: "Paolo", Surname: "Neri", LicenseNo: "MI-9001",
	})
	if err != nil {
		t.Fatalf("CreateVet returned error: %v", err)
	}
	if gotCreate.LicenseNo != "MI-9001" || vet.ID != 4 {
		t.Fatalf("create: body=%#v vet=%#v", gotCreate, vet)
	}
}

func TestRegistryKeys_DistinguishRecordsAndQueries(t *testing.T) {
	if AdopterKey(7).String() == AdopterKey(8).String() {
		t.Fatal("different adopters share a cache key")
	}
	if AdopterKey(7).Kind() != KindAdopter {
		t.Fatalf("adopter kind = %q, want %q", AdopterKey(7).Kind(), KindAdopter)
	}

	base := VetQuery{PageQuery: PageQuery{FromIndex: 0, ToIndex: 10}}
	filtered := base
	filtered.NameLike = "ver"
	if VetSearchKey(base).String() == VetSearchKey(filtered).String() {
		t.Fatal("different vet filters share a cache key")
	}
	if VetSearchKey(base).Kind() != KindVetSearch {
		t.Fatalf("vet search kind = %q, want %q", VetSearchKey(base).Kind(), KindVetSearch)
	}
}
