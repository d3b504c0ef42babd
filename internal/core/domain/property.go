package domain

import "time"

// PropertyType is the kind of real estate a listing describes.
type PropertyType string

const (
	TypeApartment  PropertyType = "APARTMENT"
	TypeHouse      PropertyType = "HOUSE"
	TypeVilla      PropertyType = "VILLA"
	TypeOffice     PropertyType = "OFFICE"
	TypeCommercial PropertyType = "COMMERCIAL"
	TypeLand       PropertyType = "LAND"
)

var propertyTypeLabels = map[PropertyType]string{
	TypeApartment:  "Appartement",
	TypeHouse:      "Maison",
	TypeVilla:      "Villa",
	TypeOffice:     "Bureau",
	TypeCommercial: "Commercial",
	TypeLand:       "Terrain",
}

// Label returns the display name, or the raw value for unknown types.
func (t PropertyType) Label() string {
	if l, ok := propertyTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is one of the known property types.
func (t PropertyType) Valid() bool {
	_, ok := propertyTypeLabels[t]
	return ok
}

// PropertyStatus is the commercial state of a listing.
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "AVAILABLE"
	StatusPending   PropertyStatus = "PENDING"
	StatusRented    PropertyStatus = "RENTED"
	StatusSold      PropertyStatus = "SOLD"
)

var propertyStatusLabels = map[PropertyStatus]string{
	StatusAvailable: "Disponible",
	StatusPending:   "En attente",
	StatusRented:    "Loué",
	StatusSold:      "Vendu",
}

func (s PropertyStatus) Label() string {
	if l, ok := propertyStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s PropertyStatus) Valid() bool {
	_, ok := propertyStatusLabels[s]
	return ok
}

// Owner is the agent summary embedded in a property.
type Owner struct {
	ID        int64  `json:"id"`
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
}

// Image is a picture attached to a property.
type Image struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

// Property is a server-owned listing. The client only reads it.
type Property struct {
	ID                 int64          `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Price              float64        `json:"price"`
	Type               PropertyType   `json:"type"`
	Status             PropertyStatus `json:"status"`
	Surface            float64        `json:"surface,omitempty"`
	Bedrooms           int            `json:"bedrooms,omitempty"`
	Bathrooms          int            `json:"bathrooms,omitempty"`
	Rooms              int            `json:"rooms,omitempty"`
	YearBuilt          int            `json:"yearBuilt,omitempty"`
	Address            string         `json:"address,omitempty"`
	City               string         `json:"city,omitempty"`
	PostalCode         string         `json:"postalCode,omitempty"`
	Country            string         `json:"country,omitempty"`
	HasParking         bool           `json:"hasParking,omitempty"`
	HasGarden          bool           `json:"hasGarden,omitempty"`
	HasPool            bool           `json:"hasPool,omitempty"`
	HasBalcony         bool           `json:"hasBalcony,omitempty"`
	HasElevator        bool           `json:"hasElevator,omitempty"`
	HasAirConditioning bool           `json:"hasAirConditioning,omitempty"`
	HasHeating         bool           `json:"hasHeating,omitempty"`
	AdditionalFeatures string         `json:"additionalFeatures,omitempty"`
	Owner              *Owner         `json:"owner,omitempty"`
	Images             []Image        `json:"images"`
	CreatedAt          time.Time      `json:"createdAt,omitempty"`
	UpdatedAt          time.Time      `json:"updatedAt,omitempty"`
}

// MainImageURL returns the image flagged as main, else the first one.
func (p *Property) MainImageURL() string {
	for _, img := range p.Images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// Favorite links a user to a property they bookmarked.
type Favorite struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	UserID     int64     `json:"userId"`
	AddedAt    time.Time `json:"addedAt,omitempty"`
	Property   *Property `json:"property,omitempty"`
}

// PropertyFilter narrows a listing. Zero values mean "not set".
type PropertyFilter struct {
	Type     PropertyType   `query:"type"`
	Status   PropertyStatus `query:"status"`
	MinPrice float64        `query:"minPrice"`
	MaxPrice float64        `query:"maxPrice"`
}

// Active reports whether any option is set.
func (f PropertyFilter) Active() bool {
	return f.Type != "" || f.Status != "" || f.MinPrice > 0 || f.MaxPrice > 0
}

// PurchaseRequest is the free-form offer sent to POST /properties/{id}/purchase.
type PurchaseRequest struct {
	Offer   float64 `json:"offer,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Listing is the result of a read that degrades instead of failing.
// When Degraded is set, Items holds the fallback set and Cause the error
// that was not propagated.
type Listing[T any] struct {
	Items    []T
	Degraded bool
	Cause    error
}

// PlaceholderProperties is the fallback catalog shown when the listing
// endpoint cannot be reached.
func PlaceholderProperties() []Property {
	return []Property{
		{
			ID:          1,
			Title:       "Belle maison avec jardin",
			Description: "Magnifique maison de 4 pièces avec grand jardin et garage",
			Price:       350000,
			Type:        TypeHouse,
			Status:      StatusAvailable,
			Surface:     120,
			Bedrooms:    4,
			Bathrooms:   2,
			Images:      []Image{},
		},
		{
			ID:          2,
			Title:       "Appartement moderne centre-ville",
			Description: "Appartement neuf de 3 pièces au cœur de la ville",
			Price:       250000,
			Type:        TypeApartment,
			Status:      StatusAvailable,
			Surface:     75,
			Bedrooms:    3,
			Bathrooms:   1,
			Images:      []Image{},
		},
	}
}
