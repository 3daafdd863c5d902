package dto

import "time"

// PaginationMeta is the backend's description of the current result set.
type PaginationMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// MerchantListItem is one row of GET /merchants.
type MerchantListItem struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	DisplayName     *string  `json:"display_name,omitempty"`
	PrimaryType     *string  `json:"primary_type,omitempty"`
	ShortAddress    *string  `json:"short_address,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	UserRatingCount *int     `json:"user_rating_count,omitempty"`
	PhotoURL        *string  `json:"photo_url,omitempty"`
	TypeCount       int      `json:"type_count"`
}

// Title prefers the curated display name.
func (m MerchantListItem) Title() string {
	if m.DisplayName != nil && *m.DisplayName != "" {
		return *m.DisplayName
	}
	return m.Name
}

// MerchantsResponse is the GET /merchants envelope.
type MerchantsResponse struct {
	Data []MerchantListItem `json:"data"`
	Meta PaginationMeta     `json:"meta"`
}

// MerchantDetail is returned by GET /merchants/{id}.
type MerchantDetail struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	DisplayName        *string  `json:"display_name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	PrimaryType        *string  `json:"primary_type,omitempty"`
	FormattedAddress   *string  `json:"formatted_address,omitempty"`
	ShortAddress       *string  `json:"short_address,omitempty"`
	PhoneNational      *string  `json:"phone_national,omitempty"`
	PhoneInternational *string  `json:"phone_international,omitempty"`
	Website            *string  `json:"website,omitempty"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	Rating             *float64 `json:"rating,omitempty"`
	UserRatingCount    *int     `json:"user_rating_count,omitempty"`
}

// Title prefers the curated display name.
func (m MerchantDetail) Title() string {
	if m.DisplayName != nil && *m.DisplayName != "" {
		return *m.DisplayName
	}
	return m.Name
}

// MerchantPhoto is one entry of GET /merchants/{id}/photos.
type MerchantPhoto struct {
	ID         int     `json:"id"`
	BlobURL    *string `json:"vercel_blob_url,omitempty"`
	Width      *int    `json:"width,omitempty"`
	Height     *int    `json:"height,omitempty"`
	AuthorName *string `json:"author_name,omitempty"`
	BlurData   *string `json:"blur_data_url,omitempty"`
	IsPrimary  bool    `json:"is_primary"`
	Order      int     `json:"order"`
}

// MerchantReview is one entry of GET /merchants/{id}/reviews.
type MerchantReview struct {
	ID             int        `json:"id"`
	Rating         int        `json:"rating"`
	Text           *string    `json:"text,omitempty"`
	AuthorName     *string    `json:"author_name,omitempty"`
	AuthorPhotoURI *string    `json:"author_photo_uri,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	RelativeTime   *string    `json:"relative_time,omitempty"`
}

// MerchantType is one entry of GET /merchants/{id}/types.
type MerchantType struct {
	ID       int    `json:"id"`
	TypeName string `json:"type_name"`
}

// OpeningHours is returned by GET /merchants/{id}/opening-hours.
type OpeningHours struct {
	ID         int     `json:"id"`
	MerchantID int     `json:"merchant_id"`
	IsOpenNow  *bool   `json:"is_open_now,omitempty"`
	Monday     *string `json:"monday,omitempty"`
	Tuesday    *string `json:"tuesday,omitempty"`
	Wednesday  *string `json:"wednesday,omitempty"`
	Thursday   *string `json:"thursday,omitempty"`
	Friday     *string `json:"friday,omitempty"`
	Saturday   *string `json:"saturday,omitempty"`
	Sunday     *string `json:"sunday,omitempty"`
}

// Amenities maps amenity keys such as "outdoor_seating" to their availability. Unknown values
// decode to nil.
type Amenities map[string]*bool
