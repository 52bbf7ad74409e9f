package hermadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_IntakeAnimal(t *testing.T) {
	t.Parallel()

	var gotIntake AnimalIntake
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/animals" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewDecoder(r.Body).Decode(&gotIntake)
		_ = json.NewEncoder(w).Encode(Animal{
			ID: 31, Code: "C-2026-031", RaceID: gotIntake.RaceID,
			EntryDate: gotIntake.EntryDate, EntryType: gotIntake.EntryType,
			EntryCityCode: gotIntake.EntryCityCode,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	animal, err := c.IntakeAnimal(context.Background(), AnimalIntake{
		RaceID: "C", EntryDate: "2026-08-30", EntryType: "R", EntryCityCode: "F205",
	})
	if err != nil {
		t.Fatalf("IntakeAnimal returned error: %v", err)
	}
	if gotIntake.RaceID != "C" || gotIntake.EntryCityCode != "F205" {
		t.Fatalf("intake body = %#v", gotIntake)
	}
	// The backend assigns id and code.
	if animal.ID != 31 || animal.Code != "C-2026-031" {
		t.Fatalf("created animal = %#v", animal)
	}
}

func TestClient_ExitAnimal(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotExit AnimalExit
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewDecoder(r.Body).Decode(&gotExit)
		_ = json.NewEncoder(w).Encode(Animal{
			ID: 31, RaceID: "C", ExitDate: gotExit.ExitDate, ExitType: gotExit.ExitType,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	animal, err := c.ExitAnimal(context.Background(), 31, AnimalExit{
		ExitDate: "2026-08-30", ExitType: "A", AdopterID: 7,
	})
	if err != nil {
		t.Fatalf("ExitAnimal returned error: %v", err)
	}
	if gotPath != "/animals/31/exit" {
		t.Fatalf("exit path = %q", gotPath)
	}
	if gotExit.AdopterID != 7 || animal.ExitType != "A" {
		t.Fatalf("exit body = %#v, animal = %#v", gotExit, animal)
	}
}

func TestClient_CreateAdoption(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotInput AdoptionInput
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewDecoder(r.Body).Decode(&gotInput)
		_ = json.NewEncoder(w).Encode(Adoption{
			ID: 5, AnimalID: 31, AdopterID: gotInput.AdopterID, Date: gotInput.Date,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	adoption, err := c.CreateAdoption(context.Background(), 31, AdoptionInput{
		AdopterID: 7, Date: "2026-08-30",
	})
	if err != nil {
		t.Fatalf("CreateAdoption returned error: %v", err)
	}
	if gotPath != "/animals/31/adoption" {
		t.Fatalf("adoption path = %q", gotPath)
	}
	if adoption.ID != 5 || adoption.AnimalID != 31 || adoption.AdopterID != 7 {
		t.Fatalf("adoption = %#v", adoption)
	}
}
