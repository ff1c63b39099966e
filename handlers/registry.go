package handlers

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/balaiwarga/dashboard/internal/models"
	"github.com/balaiwarga/dashboard/internal/validation"
)

// RegisterContentResources mounts every content section of the dashboard
// under the authenticated group, in the order they appear in the navigation.
func RegisterContentResources(rg *gin.RouterGroup, env *Env) {
	RegisterResource(rg, env, testimonialResource(env))
	RegisterResource(rg, env, heroSlideResource(env))
	RegisterResource(rg, env, galleryResource(env))
	RegisterResource(rg, env, activityResource(env))
	RegisterResource(rg, env, facilityResource(env))
	RegisterResource(rg, env, memberResource(env))
	RegisterResource(rg, env, aboutResource(env))
	RegisterResource(rg, env, contactResource(env))
	RegisterResource(rg, env, siteIdentityResource(env))
}

func postStr(c *gin.Context, name string) string {
	return strings.TrimSpace(c.PostForm(name))
}

func postInt(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(c.PostForm(name)))
	return n
}

// postBool reads a checkbox; an unchecked box submits nothing, which reads
// as false.
func postBool(c *gin.Context, name string) bool {
	return c.PostForm(name) == "true"
}

func testimonialResource(env *Env) Resource[models.Testimonial] {
	return Resource[models.Testimonial]{
		Slug:      "testimonials",
		TitleOne:  "Testimonial",
		TitleMany: "Testimonials",
		Col:       env.API.Testimonials,
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "rating", Label: "Rating"},
			{Key: "comment", Label: "Comment"},
			{Key: "is_active", Label: "Active"},
		},
		Fields: []FormField{
			{Name: "name", Label: "Name", Type: "text"},
			{Name: "rating", Label: "Rating", Type: "number", Min: validation.Min(1), Max: validation.Max(5)},
			{Name: "comment", Label: "Comment", Type: "textarea", Rows: 4},
			{Name: "order_index", Label: "Order", Type: "number"},
			{Name: "is_active", Label: "Active", Type: "checkbox"},
		},
		Image: &ImageSpec{Field: "avatar", URLField: "avatar_url", Label: "Avatar"},
		Parse: func(c *gin.Context) models.Testimonial {
			return models.Testimonial{
				Name:       postStr(c, "name"),
				AvatarURL:  postStr(c, "avatar_url"),
				Rating:     postInt(c, "rating"),
				Comment:    postStr(c, "comment"),
				IsActive:   postBool(c, "is_active"),
				OrderIndex: postInt(c, "order_index"),
			}
		},
		Validate: func(rec *models.Testimonial, isCreate, hasFile bool) *validation.FieldError {
			if v := validation.Required(rec.Name, "Name"); v != nil {
				return v
			}
			if v := validation.Number(rec.Rating, "Rating", validation.Min(1), validation.Max(5)); v != nil {
				return v
			}
			if v := validation.Required(rec.Comment, "Comment"); v != nil {
				return v
			}
			if isCreate && !hasFile && rec.AvatarURL == "" {
				return &validation.FieldError{Field: "avatar", Message: "Avatar is required for new testimonials"}
			}
			return nil
		},
		ImageURL:    func(rec *models.Testimonial) string { return rec.AvatarURL },
		SetImageURL: func(rec *models.Testimonial, url string) { rec.AvatarURL = url },
		SearchText:  func(rec *models.Testimonial) string { return rec.Name + " " + rec.Comment },
	}
}

func heroSlideResource(env *Env) Resource[models.HeroSlide] {
	return Resource[models.HeroSlide]{
		Slug:      "hero-slides",
		TitleOne:  "Hero Slide",
		TitleMany: "Hero Slides",
		Col:       env.API.HeroSlides,
		Columns: []Column{
			{Key: "order_index", Label: "Order"},
			{Key: "is_active", Label: "Active"},
		},
		Fields: []FormField{
			{Name: "order_index", Label: "Order", Type: "number"},
			{Name: "is_active", Label: "Active", Type: "checkbox"},
		},
		Image: &ImageSpec{Field: "image", URLField: "image_url", Label: "Image"},
		Parse: func(c *gin.Context) models.HeroSlide {
			return models.HeroSlide{
				ImageURL:   postStr(c, "image_url"),
				OrderIndex: postInt(c, "order_index"),
				IsActive:   postBool(c, "is_active"),
			}
		},
		Validate: func(rec *models.HeroSlide, isCreate, hasFile bool) *validation.FieldError {
			if isCreate && !hasFile && rec.ImageURL == "" {
				return &validation.FieldError{Field: "image", Message: "Image is required for new hero slides"}
			}
			return nil
		},
		ImageURL:    func(rec *models.HeroSlide) string { return rec.ImageURL },
		SetImageURL: func(rec *models.HeroSlide, url string) { rec.ImageURL = url },
		SearchText:  func(rec *models.HeroSlide) string { return strconv.Itoa(rec.OrderIndex) },
		Sort: func(items []models.HeroSlide) {
			sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
		},
	}
}

func galleryResource(env *Env) Resource[models.Gallery] {
	return Resource[models.Gallery]{
		Slug:      "galleries",
		TitleOne:  "Gallery Item",
		TitleMany: "Gallery",
		Col:       env.API.Galleries,
		Columns: []Column{
			{Key: "title", Label: "Title"},
			{Key: "description", Label: "Description"},
			{Key: "is_active", Label: "Active"},
		},
		Fields: []FormField{
			{Name: "title", Label: "Title", Type: "text"},
			{Name: "description", Label: "Description", Type: "textarea", Rows: 3},
			{Name: "order_index", Label: "Order", Type: "number"},
			{Name: "is_active", Label: "Active", Type: "checkbox"},
		},
		Image: &ImageSpec{Field: "image", URLField: "image_url", Label: "Image"},
		Parse: func(c *gin.Context) models.Gallery {
			return models.Gallery{
				Title:       postStr(c, "title"),
				Description: postStr(c, "description"),
				ImageURL:    postStr(c, "image_url"),
				OrderIndex:  postInt(c, "order_index"),
				IsActive:    postBool(c, "is_active"),
			}
		},
		Validate: func(rec *models.Gallery, isCreate, hasFile bool) *validation.FieldError {
			if v := validation.Required(rec.Title, "Title"); v != nil {
				return v
			}
			if isCreate && !hasFile && rec.ImageURL == "" {
				return &validation.FieldError{Field: "image", Message: "Image is required for new gallery items"}
			}
			return nil
		},
		ImageURL:    func(rec *models.Gallery) string { return rec.ImageURL },
		SetImageURL: func(rec *models.Gallery, url string) { rec.ImageURL = url },
		SearchText:  func(rec *models.Gallery) string { return rec.Title + " " + rec.Description },
		Sort: func(items []models.Gallery) {
			sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
		},
	}
}

func activityResource(env *Env) Resource[models.Activity] {
	return Resource[models.Activity]{
		Slug:      "activities",
		TitleOne:  "Activity",
		TitleMany: "Activities",
		Col:       env.API.Activities,
		Columns: []Column{
			{Key: "title", Label: "Title"},
			{Key: "time_info", Label: "Time"},
			{Key: "location", Label: "Location"},
			{Key: "is_active", Label: "Active"},
		},
		Fields: []FormField{
			{Name: "title", Label: "Title", Type: "text"},
			{Name: "description", Label: "Description", Type: "textarea", Rows: 3},
			{Name: "time_info", Label: "Time", Type: "text"},
			{Name: "location", Label: "Location", Type: "text"},
			{Name: "order_index", Label: "Order", Type: "number"},
			{Name: "is_active", Label: "Active", Type: "checkbox"},
		},
		Parse: func(c *gin.Context) models.Activity {
			return models.Activity{
				Title:       postStr(c, "title"),
				Description: postStr(c, "description"),
				TimeInfo:    postStr(c, "time_info"),
				Location:    postStr(c, "location"),
				OrderIndex:  postInt(c, "order_index"),
				IsActive:    postBool(c, "is_active"),
			}
		},
		Validate: func(rec *models.Activity, isCreate, hasFile bool) *validation.FieldError {
			if v := validation.Required(rec.Title, "Title"); v != nil {
				return v
			}
			return validation.Required(rec.Description, "Description")
		},
		SearchText: func(rec *models.Activity) string {
			return rec.Title + " " + rec.Description + " " + rec.Location
		},
		Sort: func(items []models.Activity) {
			sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
		},
	}
}

func facilityResource(env *Env) Resource[models.Facility] {
	return Resource[models.Facility]{
		Slug:      "facilities",
		TitleOne:  "Facility",
		TitleMany: "Facilities",
		Col:       env.API.Facilities,
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "description", Label: "Description"},
			{Key: "is_active", Label: "Active"},
		},
		Fields: []FormField{
			{Name: "name", Label: "Name", Type: "text"},
			{Name: "description", Label: "Description", Type: "textarea", Rows: 3},
			{Name: "order_index", Label: "Order", Type: "number"},
			{Name: "is_active", Label: "Active", Type: "checkbox"},
		},
		Image: &ImageSpec{Field: "image", URLField: "image_url", Label: "Image"},
		Parse: func(c *gin.Context) models.Facility {
			return models.Facility{
				Name:        postStr(c, "name"),
				Description: postStr(c, "description"),
				ImageURL:    postStr(c, "image_url"),
				OrderIndex:  postInt(c, "order_index"),
				IsActive:    postBool(c, "is_active"),
			}
		},
		Validate: func(rec *models.Facility, isCreate, hasFile bool) *validation.FieldError {
			return validation.Required(rec.Name, "Name")
		},
		ImageURL:    func(rec *models.Facility) string { return rec.ImageURL },
		SetImageURL: func(rec *models.Facility, url string) { rec.ImageURL = url },
		SearchText:  func(rec *models.Facility) string { return rec.Name + " " + rec.Description },
		Sort: func(items []models.Facility) {
			sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
		},
	}
}

func memberResource(env *Env) Resource[models.OrganizationMember] {
	return Resource[models.OrganizationMember]{
		Slug:      "organization-members",
		TitleOne:  "Organization Member",
		TitleMany: "Organization Members",
		Col:       env.API.OrganizationMembers,
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "position", Label: "Position"},
			{Key: "position_order", Label: "Rank"},
			{Key: "is_active", Label: "Active"},
		},
		Fields: []FormField{
			{Name: "name", Label: "Name", Type: "text"},
			{Name: "position", Label: "Position", Type: "text"},
			{Name: "position_order", Label: "Position Order", Type: "number", Min: validation.Min(1)},
			{Name: "order_index", Label: "Order", Type: "number"},
			{Name: "description", Label: "Description", Type: "textarea", Rows: 3},
			{Name: "is_active", Label: "Active", Type: "checkbox"},
		},
		Image: &ImageSpec{Field: "photo", URLField: "photo_url", Label: "Photo"},
		Parse: func(c *gin.Context) models.OrganizationMember {
			m := models.OrganizationMember{
				Name:          postStr(c, "name"),
				Position:      postStr(c, "position"),
				PositionOrder: postInt(c, "position_order"),
				OrderIndex:    postInt(c, "order_index"),
				IsActive:      postBool(c, "is_active"),
			}
			if u := postStr(c, "photo_url"); u != "" {
				m.PhotoURL = &u
			}
			if d := postStr(c, "description"); d != "" {
				m.Description = &d
			}
			return m
		},
		Validate: func(rec *models.OrganizationMember, isCreate, hasFile bool) *validation.FieldError {
			if v := validation.Required(rec.Name, "Name"); v != nil {
				return v
			}
			if v := validation.Required(rec.Position, "Position"); v != nil {
				return v
			}
			return validation.Number(rec.PositionOrder, "Position Order", validation.Min(1), nil)
		},
		ImageURL: func(rec *models.OrganizationMember) string {
			if rec.PhotoURL == nil {
				return ""
			}
			return *rec.PhotoURL
		},
		SetImageURL: func(rec *models.OrganizationMember, url string) { rec.PhotoURL = &url },
		SearchText: func(rec *models.OrganizationMember) string {
			return rec.Name + " " + rec.Position
		},
		// hierarchy first, then the manual ordering, then names for stability
		Sort: func(items []models.OrganizationMember) {
			sort.SliceStable(items, func(i, j int) bool {
				a, b := &items[i], &items[j]
				if a.PositionOrder != b.PositionOrder {
					return a.PositionOrder < b.PositionOrder
				}
				if a.OrderIndex != b.OrderIndex {
					return a.OrderIndex < b.OrderIndex
				}
				if a.Position != b.Position {
					return a.Position < b.Position
				}
				return a.Name < b.Name
			})
		},
	}
}

func aboutResource(env *Env) Resource[models.AboutSection] {
	return Resource[models.AboutSection]{
		Slug:      "about",
		TitleOne:  "About Section",
		TitleMany: "About Sections",
		Col:       env.API.About,
		HasValues: true,
		Columns: []Column{
			{Key: "title", Label: "Title"},
			{Key: "description", Label: "Description"},
			{Key: "is_active", Label: "Active"},
		},
		Fields: []FormField{
			{Name: "title", Label: "Title", Type: "text"},
			{Name: "description", Label: "Description", Type: "textarea", Rows: 4},
			{Name: "is_active", Label: "Active", Type: "checkbox"},
		},
		Image: &ImageSpec{Field: "image", URLField: "image_url", Label: "Image"},
		Parse: func(c *gin.Context) models.AboutSection {
			rec := models.AboutSection{
				Title:       postStr(c, "title"),
				Description: postStr(c, "description"),
				ImageURL:    postStr(c, "image_url"),
				IsActive:    postBool(c, "is_active"),
			}
			// parallel arrays, one entry per value row; blank rows are dropped
			ids := c.PostFormArray("value_id")
			titles := c.PostFormArray("value_title")
			texts := c.PostFormArray("value_text")
			for i := range titles {
				title := strings.TrimSpace(titles[i])
				text := ""
				if i < len(texts) {
					text = strings.TrimSpace(texts[i])
				}
				if title == "" && text == "" {
					continue
				}
				v := models.AboutValue{Title: title, Value: text, OrderIndex: len(rec.Values)}
				if i < len(ids) {
					v.ID = strings.TrimSpace(ids[i])
				}
				rec.Values = append(rec.Values, v)
			}
			return rec
		},
		Validate: func(rec *models.AboutSection, isCreate, hasFile bool) *validation.FieldError {
			if v := validation.Required(rec.Title, "Title"); v != nil {
				return v
			}
			if v := validation.Required(rec.Description, "Description"); v != nil {
				return v
			}
			for _, val := range rec.Values {
				if strings.TrimSpace(val.Title) == "" {
					return &validation.FieldError{Field: "value_title", Message: "Value Title is required"}
				}
				if strings.TrimSpace(val.Value) == "" {
					return &validation.FieldError{Field: "value_text", Message: "Value Text is required"}
				}
			}
			return nil
		},
		ImageURL:    func(rec *models.AboutSection) string { return rec.ImageURL },
		SetImageURL: func(rec *models.AboutSection, url string) { rec.ImageURL = url },
		SearchText:  func(rec *models.AboutSection) string { return rec.Title + " " + rec.Description },
	}
}

func contactResource(env *Env) Resource[models.ContactInfo] {
	return Resource[models.ContactInfo]{
		Slug:      "contact-info",
		TitleOne:  "Contact Info",
		TitleMany: "Contact Info",
		Col:       env.API.ContactInfo,
		Columns: []Column{
			{Key: "address", Label: "Address"},
			{Key: "phone", Label: "Phone"},
			{Key: "email", Label: "Email"},
		},
		Fields: []FormField{
			{Name: "address", Label: "Address", Type: "textarea", Rows: 2},
			{Name: "phone", Label: "Phone", Type: "text"},
			{Name: "email", Label: "Email", Type: "text"},
			{Name: "visiting_hours", Label: "Visiting Hours", Type: "text"},
			{Name: "map_embed_url", Label: "Map Embed URL", Type: "text"},
		},
		Parse: func(c *gin.Context) models.ContactInfo {
			return models.ContactInfo{
				Address:       postStr(c, "address"),
				Phone:         postStr(c, "phone"),
				Email:         postStr(c, "email"),
				VisitingHours: postStr(c, "visiting_hours"),
				MapEmbedURL:   postStr(c, "map_embed_url"),
			}
		},
		Validate: func(rec *models.ContactInfo, isCreate, hasFile bool) *validation.FieldError {
			if v := validation.Required(rec.Address, "Address"); v != nil {
				return v
			}
			if v := validation.Required(rec.Phone, "Phone"); v != nil {
				return v
			}
			return validation.Email(rec.Email)
		},
		SearchText: func(rec *models.ContactInfo) string {
			return rec.Address + " " + rec.Phone + " " + rec.Email
		},
	}
}

func siteIdentityResource(env *Env) Resource[models.SiteIdentity] {
	return Resource[models.SiteIdentity]{
		Slug:      "site-identity",
		TitleOne:  "Site Identity",
		TitleMany: "Site Identity",
		Col:       env.API.SiteIdentity,
		Columns: []Column{
			{Key: "site_name", Label: "Site Name"},
			{Key: "tagline", Label: "Tagline"},
		},
		Fields: []FormField{
			{Name: "site_name", Label: "Site Name", Type: "text"},
			{Name: "tagline", Label: "Tagline", Type: "text"},
			{Name: "primary_button_text", Label: "Primary Button Text", Type: "text"},
			{Name: "primary_button_link", Label: "Primary Button Link", Type: "text"},
			{Name: "secondary_button_text", Label: "Secondary Button Text", Type: "text"},
			{Name: "secondary_button_link", Label: "Secondary Button Link", Type: "text"},
		},
		Image: &ImageSpec{Field: "logo", URLField: "logo_url", Label: "Logo"},
		Parse: func(c *gin.Context) models.SiteIdentity {
			return models.SiteIdentity{
				SiteName:            postStr(c, "site_name"),
				LogoURL:             postStr(c, "logo_url"),
				Tagline:             postStr(c, "tagline"),
				PrimaryButtonText:   postStr(c, "primary_button_text"),
				PrimaryButtonLink:   postStr(c, "primary_button_link"),
				SecondaryButtonText: postStr(c, "secondary_button_text"),
				SecondaryButtonLink: postStr(c, "secondary_button_link"),
			}
		},
		Validate: func(rec *models.SiteIdentity, isCreate, hasFile bool) *validation.FieldError {
			return validation.Required(rec.SiteName, "Site Name")
		},
		ImageURL:    func(rec *models.SiteIdentity) string { return rec.LogoURL },
		SetImageURL: func(rec *models.SiteIdentity, url string) { rec.LogoURL = url },
		SearchText:  func(rec *models.SiteIdentity) string { return rec.SiteName + " " + rec.Tagline },
	}
}
