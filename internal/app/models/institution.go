package models

import "time"

// Contact holds the public contact details shown on an institution site.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Whatsapp string `json:"whatsapp,omitempty"`
	MapLink  string `json:"mapLink,omitempty"`
}

// Theme holds the palette selection for an institution site.
type Theme struct {
	PaletteKey string            `json:"paletteKey"`
	Colors     map[string]string `json:"colors,omitempty"`
}

// NavItem is a single navigation entry on the public site.
type NavItem struct {
	Label     string `json:"label"`
	URL       string `json:"url"`
	Position  string `json:"position"` // left | center | right
	Order     int    `json:"order"`
	IsVisible bool   `json:"isVisible"`
}

// PageSection is one building block of a site page.
type PageSection struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// Page is a single page of the public microsite.
type Page struct {
	Key      string        `json:"key"`
	Title    string        `json:"title"`
	Sections []PageSection `json:"sections"`
}

// Institution is a tenant: a school, college or coaching center.
// InstCode is assigned lazily from the global institution-code counter and
// never changes afterwards.
type Institution struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Subdomain    string          `json:"subdomain"`
	Type         InstitutionType `json:"type"`
	InstCode     *int            `json:"instCode,omitempty"`
	OwnerUserID  string          `json:"ownerUserId"`
	SourcePlanID *int64          `json:"sourcePlanId,omitempty"`
	Tagline      string          `json:"tagline,omitempty"`
	LogoURL      string          `json:"logoUrl,omitempty"`
	Theme        Theme           `json:"theme"`
	Contact      Contact         `json:"contact"`
	Nav          []NavItem       `json:"nav"`
	Pages        []Page          `json:"pages"`

	Status      InstitutionStatus `json:"status"`
	PublishedAt *time.Time        `json:"publishedAt,omitempty"`
	PublicURL   string            `json:"publicUrl,omitempty"`
	Version     int               `json:"version"`

	CustomDomain            *string `json:"customDomain,omitempty"`
	CustomDomainStatus      string  `json:"customDomainStatus,omitempty"` // pending | verifying | active | error
	CustomDomainVerifyToken string  `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultPages is the page scaffold applied to a fresh draft.
func DefaultPages() []Page {
	return []Page{
		{Key: "home", Title: "Home", Sections: []PageSection{{Type: "hero", Data: map[string]interface{}{"headline": "Welcome to Our Institution", "subheadline": "Excellence in Education"}}}},
		{Key: "about", Title: "About Us", Sections: []PageSection{{Type: "about", Data: map[string]interface{}{"content": "Describe your mission, vision and achievements here."}}}},
		{Key: "courses", Title: "Courses", Sections: []PageSection{{Type: "courses", Data: map[string]interface{}{"items": []interface{}{}}}}},
		{Key: "student-login", Title: "Student Login", Sections: []PageSection{{Type: "login-info", Data: map[string]interface{}{"instructions": "Student portal coming soon."}}}},
		{Key: "staff-login", Title: "Admin / Staff Login", Sections: []PageSection{{Type: "login-info", Data: map[string]interface{}{"instructions": "Staff portal coming soon."}}}},
		{Key: "contact", Title: "Contact Us", Sections: []PageSection{{Type: "contact", Data: map[string]interface{}{"address": "", "phone": "", "email": ""}}}},
	}
}

// DefaultNav is the navigation scaffold applied to a fresh draft.
func DefaultNav() []NavItem {
	return []NavItem{
		{Label: "Home", URL: "#home", Position: "center", Order: 0, IsVisible: true},
		{Label: "About Us", URL: "#about", Position: "center", Order: 1, IsVisible: true},
		{Label: "Courses", URL: "#courses", Position: "center", Order: 2, IsVisible: true},
		{Label: "Student Login", URL: "#student-login", Position: "center", Order: 3, IsVisible: true},
		{Label: "Admin Login", URL: "#staff-login", Position: "right", Order: 0, IsVisible: true},
		{Label: "Contact", URL: "#contact", Position: "right", Order: 1, IsVisible: true},
	}
}
