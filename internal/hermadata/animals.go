package hermadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SearchAnimals retrieves one window of animal records.
func (c *Client) SearchAnimals(ctx context.Context, q AnimalQuery) (Page[AnimalSummary], error) {
	rel := &url.URL{Path: "/animals", RawQuery: q.values().Encode()}
	var page Page[AnimalSummary]
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &page); err != nil {
		return Page[AnimalSummary]{}, err
	}
	return page, nil
}

// FetchAnimal retrieves one full animal record.
func (c *Client) FetchAnimal(ctx context.Context, id int64) (Animal, error) {
	rel := &url.URL{Path: fmt.Sprintf("/animals/%d", id)}
	var animal Animal
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &animal); err != nil {
		return Animal{}, err
	}
	return animal, nil
}

// IntakeAnimal registers an animal entering the shelter and returns the
// created record (with server-assigned id and code).
func (c *Client) IntakeAnimal(ctx context.Context, in AnimalIntake) (Animal, error) {
	rel := &url.URL{Path: "/animals"}
	var animal Animal
	if err := c.doJSON(ctx, http.MethodPost, rel, in, &animal); err != nil {
		return Animal{}, err
	}
	return animal, nil
}

// UpdateAnimal writes the editable fields of a record. A chip-code
// collision comes back as an *APIError with CodeDuplicateChip; use
// ChipConflict to extract the conflicting animal id.
func (c *Client) UpdateAnimal(ctx context.Context, id int64, in AnimalUpdate) (Animal, error) {
	rel := &url.URL{Path: fmt.Sprintf("/animals/%d", id)}
	var animal Animal
	if err := c.doJSON(ctx, http.MethodPut, rel, in, &animal); err != nil {
		return Animal{}, err
	}
	return animal, nil
}

// ExitAnimal closes an animal's stay.
func (c *Client) ExitAnimal(ctx context.Context, id int64, in AnimalExit) (Animal, error) {
	rel := &url.URL{Path: fmt.Sprintf("/animals/%d/exit", id)}
	var animal Animal
	if err := c.doJSON(ctx, http.MethodPost, rel, in, &animal); err != nil {
		return Animal{}, err
	}
	return animal, nil
}

// CreateAdoption records a completed adoption for an animal.
func (c *Client) CreateAdoption(ctx context.Context, animalID int64, in AdoptionInput) (Adoption, error) {
	rel := &url.URL{Path: fmt.Sprintf("/animals/%d/adoption", animalID)}
	var adoption Adoption
	if err := c.doJSON(ctx, http.MethodPost, rel, in, &adoption); err != nil {
		return Adoption{}, err
	}
	return adoption, nil
}
