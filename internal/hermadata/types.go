package hermadata

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hermadata/console/internal/schema"
)

const apiDateLayout = "2006-01-02"

// Page is the uniform list-endpoint envelope: a window of items plus the
// total match count for pagination.
type Page[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// AppendItem adds a confirmed record to the page and bumps the total. It
// satisfies the cache's Appender contract so post-mutation patches can
// extend a cached page without refetching it.
func (p Page[T]) AppendItem(item any) any {
	t, ok := item.(T)
	if !ok {
		return p
	}
	items := make([]T, 0, len(p.Items)+1)
	items = append(items, p.Items...)
	items = append(items, t)
	p.Items = items
	p.Total++
	return p
}

// Validate checks the envelope and every item that carries its own checks.
func (p Page[T]) Validate() error {
	var issues []schema.Issue
	if p.Total < 0 {
		issues = append(issues, schema.Issue{Field: "total", Msg: "negative total"})
	}
	if len(p.Items) > p.Total {
		issues = append(issues, schema.Issue{Field: "items", Msg: "window larger than total"})
	}
	for i, item := range p.Items {
		if err := schema.Check(item); err != nil {
			issues = append(issues, schema.Issue{Field: "items[" + strconv.Itoa(i) + "]", Msg: err.Error()})
		}
	}
	return schema.Collect(issues)
}

// PageQuery is the request half of the pagination contract.
type PageQuery struct {
	FromIndex int
	ToIndex   int
	SortField string
	SortOrder string // "asc" or "desc"
}

func (q PageQuery) values() url.Values {
	v := url.Values{}
	v.Set("from_index", strconv.Itoa(q.FromIndex))
	v.Set("to_index", strconv.Itoa(q.ToIndex))
	if f := strings.TrimSpace(q.SortField); f != "" {
		v.Set("sort_field", f)
	}
	if o := strings.TrimSpace(q.SortOrder); o != "" {
		v.Set("sort_order", o)
	}
	return v
}

// Credentials is the token half of a successful login.
type Credentials struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Profile describes the logged-in operator.
type Profile struct {
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
}

// AnimalSummary is the search-row projection of an animal record.
type AnimalSummary struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	ChipCode  string `json:"chip_code"`
	RaceID    string `json:"race_id"`
	BreedID   int64  `json:"breed_id"`
	EntryDate string `json:"entry_date"`
	ExitDate  string `json:"exit_date"`
	Adoptable bool   `json:"adoptable"`
}

// Animal is the full record behind a detail view.
type Animal struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	ChipCode      string `json:"chip_code"`
	RaceID        string `json:"race_id"`
	BreedID       int64  `json:"breed_id"`
	Sex           string `json:"sex"`
	BirthDate     string `json:"birth_date"`
	Sterilized    bool   `json:"sterilized"`
	EntryDate     string `json:"entry_date"`
	EntryType     string `json:"entry_type"`
	EntryCityCode string `json:"entry_city_code"`
	ExitDate      string `json:"exit_date"`
	ExitType      string `json:"exit_type"`
	Adoptable     bool   `json:"adoptable"`
	Notes         string `json:"notes"`
}

// Validate rejects records the console cannot safely render or edit.
func (a Animal) Validate() error {
	var issues []schema.Issue
	issues = schema.RequireID(issues, "id", a.ID)
	issues = schema.Require(issues, "race_id", a.RaceID)
	if a.ChipCode != "" && !schema.ValidChipCode(a.ChipCode) {
		issues = append(issues, schema.Issue{Field: "chip_code", Msg: "malformed chip code"})
	}
	return schema.Collect(issues)
}

// ParsedEntryDate returns the entry date, or the zero time when missing
// or malformed.
func (a Animal) ParsedEntryDate() time.Time { return parseAPIDate(a.EntryDate) }

// ParsedExitDate returns the exit date, or the zero time when the animal
// is still in the shelter.
func (a Animal) ParsedExitDate() time.Time { return parseAPIDate(a.ExitDate) }

func parseAPIDate(s string) time.Time {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(apiDateLayout, trimmed); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return ts
	}
	return time.Time{}
}

// AnimalQuery filters an animal search.
type AnimalQuery struct {
	PageQuery
	RaceID    string
	NameLike  string
	ChipCode  string
	EntryFrom string
	EntryTo   string
	Adoptable bool
}

func (q AnimalQuery) values() url.Values {
	v := q.PageQuery.values()
	if q.RaceID != "" {
		v.Set("race_id", q.RaceID)
	}
	if q.NameLike != "" {
		v.Set("name", q.NameLike)
	}
	if q.ChipCode != "" {
		v.Set("chip_code", q.ChipCode)
	}
	if q.EntryFrom != "" {
		v.Set("from_entry_date", q.EntryFrom)
	}
	if q.EntryTo != "" {
		v.Set("to_entry_date", q.EntryTo)
	}
	if q.Adoptable {
		v.Set("adoptable", "1")
	}
	return v
}

// AnimalIntake registers an animal entering the shelter. The backend
// assigns the code and id.
type AnimalIntake struct {
	RaceID        string `json:"race_id"`
	EntryDate     string `json:"entry_date"`
	EntryType     string `json:"entry_type"`
	EntryCityCode string `json:"entry_city_code"`
}

// AnimalUpdate carries the editable fields of an animal record.
type AnimalUpdate struct {
	Name       string `json:"name"`
	ChipCode   string `json:"chip_code"`
	BreedID    int64  `json:"breed_id"`
	Sex        string `json:"sex"`
	BirthDate  string `json:"birth_date"`
	Sterilized bool   `json:"sterilized"`
	Adoptable  bool   `json:"adoptable"`
	Notes      string `json:"notes"`
}

// AnimalExit closes an animal's stay (adoption, transfer, death, ...).
type AnimalExit struct {
	ExitDate  string `json:"exit_date"`
	ExitType  string `json:"exit_type"`
	AdopterID int64  `json:"adopter_id,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Adopter is a registry entry for a person who can adopt.
type Adopter struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	FiscalCode string `json:"fiscal_code"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	CityCode   string `json:"city_code"`
	Address    string `json:"address"`
}

// Validate rejects adopter records without an identity.
func (a Adopter) Validate() error {
	var issues []schema.Issue
	issues = schema.RequireID(issues, "id", a.ID)
	issues = schema.Require(issues, "name", a.Name)
	issues = schema.Require(issues, "surname", a.Surname)
	return schema.Collect(issues)
}

// AdopterInput creates or updates an adopter.
type AdopterInput struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	FiscalCode string `json:"fiscal_code"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	CityCode   string `json:"city_code"`
	Address    string `json:"address"`
}

// AdopterQuery filters an adopter search.
type AdopterQuery struct {
	PageQuery
	NameLike   string
	FiscalCode string
}

func (q AdopterQuery) values() url.Values {
	v := q.PageQuery.values()
	if q.NameLike != "" {
		v.Set("name", q.NameLike)
	}
	if q.FiscalCode != "" {
		v.Set("fiscal_code", q.FiscalCode)
	}
	return v
}

// Adoption links an animal to its adopter.
type Adoption struct {
	ID        int64  `json:"id"`
	AnimalID  int64  `json:"animal_id"`
	AdopterID int64  `json:"adopter_id"`
	Date      string `json:"date"`
}

// AdoptionInput records a completed adoption.
type AdoptionInput struct {
	AdopterID int64  `json:"adopter_id"`
	Date      string `json:"date"`
}

// Vet is a registry entry for a veterinarian.
type Vet struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	FiscalCode string `json:"fiscal_code"`
	LicenseNo  string `json:"license_no"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// VetInput creates a veterinarian.
type VetInput struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	FiscalCode string `json:"fiscal_code"`
	LicenseNo  string `json:"license_no"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// VetQuery filters a veterinarian search.
type VetQuery struct {
	PageQuery
	NameLike string
}

func (q VetQuery) values() url.Values {
	v := q.PageQuery.values()
	if q.NameLike != "" {
		v.Set("name", q.NameLike)
	}
	return v
}

// Race is a species entry ("C" dog, "G" cat, ...).
type Race struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Breed belongs to exactly one race.
type Breed struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	RaceID string `json:"race_id"`
}

// Province and City mirror the Italian administrative registries used by
// intake and adopter forms.
type Province struct {
	Code string `json:"id"`
	Name string `json:"name"`
}

type City struct {
	Code         string `json:"id"`
	Name         string `json:"name"`
	ProvinceCode string `json:"provincia"`
}

// DocKind is a configured document category (health booklet, chip
// certificate, ...). Only uploadable kinds appear in the attach form.
type DocKind struct {
	ID         int64  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Uploadable bool   `json:"uploadable"`
}

// Document is a persisted file association on an animal record.
type Document struct {
	ID          int64  `json:"id"`
	DocumentID  int64  `json:"document_id"`
	Title       string `json:"title"`
	KindCode    string `json:"kind_code"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	CreatedAt   string `json:"created_at"`
}

// DocumentInput is phase two of the upload contract: it ties a previously
// uploaded file id to an owning record.
type DocumentInput struct {
	Title      string `json:"title"`
	KindCode   string `json:"kind_code"`
	DocumentID int64  `json:"document_id"`
}

// User is an operator account; role administration is superuser-only.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
}

// ShelterStats backs the dashboard view.
type ShelterStats struct {
	Present         int            `json:"present"`
	EnteredThisYear int            `json:"entered_this_year"`
	ExitedThisYear  int            `json:"exited_this_year"`
	Adoptions       int            `json:"adoptions"`
	ByRace          map[string]int `json:"by_race"`
}
