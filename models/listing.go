package models

import "time"

// ScrapedListing is the structured record the extraction engine produces from a
// single listing page. Every field is always populated: either with a value
// discovered on the page or with its documented fallback.
type ScrapedListing struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       int      `json:"price"`
	Images      []string `json:"images"`
	Guests      int      `json:"guests"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Amenities   []string `json:"amenities"`
	HostName    string   `json:"hostName"`
	HostAvatar  string   `json:"hostAvatar"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`

	// Only set when coordinates were actually discovered; nil means unknown,
	// not zero.
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// StructuredData is the partial record read from an embedded JSON-LD metadata
// block. Zero values mean "not present in the block"; the engine falls back to
// heuristic extraction for those fields.
type StructuredData struct {
	Title       string
	Description string
	Location    string
	Images      []string
	Rating      float64
	ReviewCount int
	Lat         *float64
	Lng         *float64
}

// Property is a persisted imported listing, keyed by the owner who imported it
// and the source URL it came from.
type Property struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"ownerId"`
	SourceURL string    `json:"sourceUrl"`
	CreatedAt time.Time `json:"createdAt"`

	ScrapedListing
}

// StatsReport holds the computed aggregates over the stored properties.
type StatsReport struct {
	TotalProperties      int            `json:"totalProperties"`
	AveragePrice         float64        `json:"averagePrice"`
	MinPrice             int            `json:"minPrice"`
	MaxPrice             int            `json:"maxPrice"`
	MostExpensive        *Property      `json:"mostExpensive,omitempty"`
	TopRated             []*Property    `json:"topRated"`
	PropertiesByLocation map[string]int `json:"propertiesByLocation"`
}
