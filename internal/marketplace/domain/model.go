package domain

import "time"

type ListingStatus string

const (
	StatusActive  ListingStatus = "active"
	StatusSold    ListingStatus = "sold"
	StatusDeleted ListingStatus = "deleted"
)

// DefaultPublicationLimit is the monthly publication ceiling applied to every
// seller account that has no explicit limit of its own.
const DefaultPublicationLimit = 50

const (
	MinListingImages = 1
	MaxListingImages = 3
)

// Categories is the closed set of listing categories. Not user-extensible.
var Categories = []string{
	"electronics",
	"fashion",
	"home",
	"beauty",
	"sports",
	"books",
	"toys",
	"other",
}

// Neighborhoods is the closed set of Abidjan communes a listing can be attached to.
var Neighborhoods = []string{
	"Yopougon",
	"Cocody",
	"Plateau",
	"Adjamé",
	"Abobo",
	"Marcory",
	"Koumassi",
	"Port-Bouët",
	"Attécoubé",
	"Treichville",
}

func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func IsValidNeighborhood(n string) bool {
	for _, v := range Neighborhoods {
		if v == n {
			return true
		}
	}
	return false
}

// User is a marketplace account. Every user can act as a seller; the quota
// fields track how many listings the account published in the current
// calendar month.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string // WhatsApp number
	Neighborhood string
	PhotoURL     string
	IsVerified   bool
	SalesCount   int
	CreatedAt    time.Time

	PublicationCount     int
	PublicationLimit     int
	LastPublicationReset time.Time
}

// SellerSnapshot is the seller profile captured on a listing at publish time.
// It is intentionally stale: later profile edits do not propagate to
// already-published listings.
type SellerSnapshot struct {
	SellerID       string
	SellerName     string
	SellerPhone    string
	SellerPhoto    string
	SellerVerified bool
}

func SnapshotSeller(u *User) SellerSnapshot {
	return SellerSnapshot{
		SellerID:       u.ID,
		SellerName:     u.Name,
		SellerPhone:    u.Phone,
		SellerPhoto:    u.PhotoURL,
		SellerVerified: u.IsVerified,
	}
}

// Listing is a published product. Price is in integer major units (FCFA).
// CreatedAt is assigned by the repository at write time, never by the client.
type Listing struct {
	ID           string
	Title        string
	Description  string
	Price        int64
	Category     string
	Neighborhood string
	Images       []string // 1-3 image URLs

	Seller SellerSnapshot

	ContactClickCount int64
	Status            ListingStatus
	CreatedAt         time.Time
}

// ListingDraft carries the user-supplied fields of a new listing. Images are
// uploaded separately and attached by the publish flow.
type ListingDraft struct {
	Title        string
	Description  string
	Price        int64
	Category     string
	Neighborhood string
}

// ImageUpload is one image file to store alongside a listing or profile.
type ImageUpload struct {
	FileName string
	Data     []byte
}

// Filter selects listings. Zero-valued dimensions are unconstrained, except
// Status which callers default to StatusActive for public browsing.
type Filter struct {
	Status       ListingStatus
	Category     string
	Neighborhood string
	SellerID     string
	Query        string // free text, matched in the application tier
}

// ProfileUpdate carries the user-editable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Name         *string
	Phone        *string
	Neighborhood *string
}
