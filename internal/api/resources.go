package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/balaiwarga/dashboard/internal/models"
)

// Collection is a typed view over one upstream REST collection. Every content
// resource exposes the same five operations, so one parameterized client
// serves them all.
type Collection[T any] struct {
	c    *Client
	path string
}

// NewCollection binds a collection client to an upstream path such as
// "/api/testimonials".
func NewCollection[T any](c *Client, path string) Collection[T] {
	return Collection[T]{c: c, path: path}
}

// GetAll fetches every record. An absent or null data payload yields an empty
// slice, never an error.
func (r Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.Do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r Collection[T]) Create(ctx context.Context, in *T) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodPost, r.path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r Collection[T]) Update(ctx context.Context, id string, in *T) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r Collection[T]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}

// API aggregates the typed collection clients plus the auth endpoints,
// mirroring the upstream's resource layout one to one.
type API struct {
	Client *Client
	Auth   *AuthAPI

	Testimonials        Collection[models.Testimonial]
	HeroSlides          Collection[models.HeroSlide]
	Galleries           Collection[models.Gallery]
	ContactInfo         Collection[models.ContactInfo]
	Activities          Collection[models.Activity]
	Facilities          Collection[models.Facility]
	SiteIdentity        Collection[models.SiteIdentity]
	About               Collection[models.AboutSection]
	OrganizationMembers Collection[models.OrganizationMember]
}

func NewAPI(c *Client) *API {
	return &API{
		Client: c,
		Auth:   &AuthAPI{c: c},

		Testimonials:        NewCollection[models.Testimonial](c, "/api/testimonials"),
		HeroSlides:          NewCollection[models.HeroSlide](c, "/api/hero-slides"),
		Galleries:           NewCollection[models.Gallery](c, "/api/galleries"),
		ContactInfo:         NewCollection[models.ContactInfo](c, "/api/contact-info"),
		Activities:          NewCollection[models.Activity](c, "/api/activities"),
		Facilities:          NewCollection[models.Facility](c, "/api/facilities"),
		SiteIdentity:        NewCollection[models.SiteIdentity](c, "/api/site-identity"),
		About:               NewCollection[models.AboutSection](c, "/api/about"),
		OrganizationMembers: NewCollection[models.OrganizationMember](c, "/api/organization-members"),
	}
}
