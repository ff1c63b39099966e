package models

// Content record types mirror the upstream API exactly: snake_case JSON
// fields, string ids assigned by the backend, and created_at/updated_at as
// epoch milliseconds. The dashboard holds no authoritative copy of any of
// these; every view re-fetches from the upstream.

type Testimonial struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	IsActive   bool   `json:"is_active"`
	OrderIndex int    `json:"order_index"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

type HeroSlide struct {
	ID         string `json:"id"`
	ImageURL   string `json:"image_url"`
	OrderIndex int    `json:"order_index"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

type Gallery struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	OrderIndex  int    `json:"order_index"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

type ContactInfo struct {
	ID            string `json:"id"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	VisitingHours string `json:"visiting_hours"`
	MapEmbedURL   string `json:"map_embed_url"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
}

type Activity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeInfo    string `json:"time_info"`
	Location    string `json:"location"`
	OrderIndex  int    `json:"order_index"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

type Facility struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	OrderIndex  int    `json:"order_index"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

type SiteIdentity struct {
	ID                  string `json:"id"`
	SiteName            string `json:"site_name"`
	LogoURL             string `json:"logo_url"`
	Tagline             string `json:"tagline"`
	PrimaryButtonText   string `json:"primary_button_text"`
	PrimaryButtonLink   string `json:"primary_button_link"`
	SecondaryButtonText string `json:"secondary_button_text"`
	SecondaryButtonLink string `json:"secondary_button_link"`
	CreatedAt           int64  `json:"created_at"`
	UpdatedAt           int64  `json:"updated_at"`
}

// AboutValue is a child row of an AboutSection. Values have no independent
// lifecycle: they are created, updated and deleted only as part of the parent
// section's payload.
type AboutValue struct {
	ID         string `json:"id"`
	AboutID    string `json:"about_id"`
	Title      string `json:"title"`
	Value      string `json:"value"`
	OrderIndex int    `json:"order_index"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

type AboutSection struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   int64        `json:"created_at"`
	UpdatedAt   int64        `json:"updated_at"`
	Values      []AboutValue `json:"values"`
}

// OrganizationMember uses pointers for the nullable columns; the upstream
// serializes them as JSON null when absent.
type OrganizationMember struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	PositionOrder int     `json:"position_order"`
	OrderIndex    int     `json:"order_index"`
	PhotoURL      *string `json:"photo_url"`
	Description   *string `json:"description"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
}
