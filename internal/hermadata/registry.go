package hermadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SearchAdopters retrieves one window of the adopter registry.
func (c *Client) SearchAdopters(ctx context.Context, q AdopterQuery) (Page[Adopter], error) {
	rel := &url.URL{Path: "/adopters", RawQuery: q.values().Encode()}
	var page Page[Adopter]
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &page); err != nil {
		return Page[Adopter]{}, err
	}
	return page, nil
}

// FetchAdopter retrieves one adopter record.
func (c *Client) FetchAdopter(ctx context.Context, id int64) (Adopter, error) {
	rel := &url.URL{Path: fmt.Sprintf("/adopters/%d", id)}
	var adopter Adopter
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &adopter); err != nil {
		return Adopter{}, err
	}
	return adopter, nil
}

// CreateAdopter adds a person to the adopter registry.
func (c *Client) CreateAdopter(ctx context.Context, in AdopterInput) (Adopter, error) {
	rel := &url.URL{Path: "/adopters"}
	var adopter Adopter
	if err := c.doJSON(ctx, http.MethodPost, rel, in, &adopter); err != nil {
		return Adopter{}, err
	}
	return adopter, nil
}

// UpdateAdopter rewrites an adopter record.
func (c *Client) UpdateAdopter(ctx context.Context, id int64, in AdopterInput) (Adopter, error) {
	rel := &url.URL{Path: fmt.Sprintf("/adopters/%d", id)}
	var adopter Adopter
	if err := c.doJSON(ctx, http.MethodPut, rel, in, &adopter); err != nil {
		return Adopter{}, err
	}
	return adopter, nil
}

// SearchVets retrieves one window of the veterinarian registry.
func (c *Client) SearchVets(ctx context.Context, q VetQuery) (Page[Vet], error) {
	rel := &url.URL{Path: "/vets", RawQuery: q.values().Encode()}
	var page Page[Vet]
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &page); err != nil {
		return Page[Vet]{}, err
	}
	return page, nil
}

// CreateVet adds a veterinarian to the registry.
func (c *Client) CreateVet(ctx context.Context, in VetInput) (Vet, error) {
	rel := &url.URL{Path: "/vets"}
	var vet Vet
	if err := c.doJSON(ctx, http.MethodPost, rel, in, &vet); err != nil {
		return Vet{}, err
	}
	return vet, nil
}

// FetchUsers lists operator accounts. Superuser-only on the backend; a
// standard operator gets a 403 (and the auth-failure hook fires).
func (c *Client) FetchUsers(ctx context.Context) ([]User, error) {
	rel := &url.URL{Path: "/users"}
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserSuperuser grants or revokes the superuser role.
func (c *Client) SetUserSuperuser(ctx context.Context, id int64, superuser bool) (User, error) {
	rel := &url.URL{Path: fmt.Sprintf("/users/%d/role", id)}
	body := map[string]bool{"is_superuser": superuser}
	var user User
	if err := c.doJSON(ctx, http.MethodPut, rel, body, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
