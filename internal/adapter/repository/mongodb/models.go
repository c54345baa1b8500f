package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
)

// listingDocument is the persisted shape of a listing. The seller_* fields
// are a snapshot taken at publish time, not a join.
type listingDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Price        int64              `bson:"price"`
	Category     string             `bson:"category"`
	Neighborhood string             `bson:"neighborhood"`
	Images       []string           `bson:"images"`

	SellerID       string `bson:"seller_id"`
	SellerName     string `bson:"seller_name"`
	SellerPhone    string `bson:"seller_phone"`
	SellerPhoto    string `bson:"seller_photo,omitempty"`
	SellerVerified bool   `bson:"seller_verified"`

	ContactClickCount int64                `bson:"contact_click_count"`
	Status            domain.ListingStatus `bson:"status"`
	CreatedAt         time.Time            `bson:"created_at"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	Phone        string             `bson:"phone"`
	Neighborhood string             `bson:"neighborhood,omitempty"`
	PhotoURL     string             `bson:"photo_url,omitempty"`
	IsVerified   bool               `bson:"is_verified"`
	SalesCount   int                `bson:"sales_count"`
	CreatedAt    time.Time          `bson:"created_at"`

	PublicationCount     int       `bson:"publication_count"`
	PublicationLimit     int       `bson:"publication_limit"`
	LastPublicationReset time.Time `bson:"last_publication_reset"`
}

func toListingDocument(l *domain.Listing) *listingDocument {
	return &listingDocument{
		Title:             l.Title,
		Description:       l.Description,
		Price:             l.Price,
		Category:          l.Category,
		Neighborhood:      l.Neighborhood,
		Images:            l.Images,
		SellerID:          l.Seller.SellerID,
		SellerName:        l.Seller.SellerName,
		SellerPhone:       l.Seller.SellerPhone,
		SellerPhoto:       l.Seller.SellerPhoto,
		SellerVerified:    l.Seller.SellerVerified,
		ContactClickCount: l.ContactClickCount,
		Status:            l.Status,
		CreatedAt:         l.CreatedAt,
	}
}

func toDomainListing(d *listingDocument) *domain.Listing {
	return &domain.Listing{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Category:     d.Category,
		Neighborhood: d.Neighborhood,
		Images:       d.Images,
		Seller: domain.SellerSnapshot{
			SellerID:       d.SellerID,
			SellerName:     d.SellerName,
			SellerPhone:    d.SellerPhone,
			SellerPhoto:    d.SellerPhoto,
			SellerVerified: d.SellerVerified,
		},
		ContactClickCount: d.ContactClickCount,
		Status:            d.Status,
		CreatedAt:         d.CreatedAt,
	}
}

func toDomainUser(d *userDocument) *domain.User {
	return &domain.User{
		ID:                   d.ID.Hex(),
		Email:                d.Email,
		Name:                 d.Name,
		Phone:                d.Phone,
		Neighborhood:         d.Neighborhood,
		PhotoURL:             d.PhotoURL,
		IsVerified:           d.IsVerified,
		SalesCount:           d.SalesCount,
		CreatedAt:            d.CreatedAt,
		PublicationCount:     d.PublicationCount,
		PublicationLimit:     d.PublicationLimit,
		LastPublicationReset: d.LastPublicationReset,
	}
}
