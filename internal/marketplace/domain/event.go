package domain

const (
	SubjectListingPublished = "listing.published"
	SubjectListingSold      = "listing.sold"
	SubjectListingDeleted   = "listing.deleted"
)

// ListingEvent is the payload emitted on listing lifecycle subjects for
// downstream consumers (notifications, analytics). The subject travels with
// the event but is not part of the wire payload.
type ListingEvent struct {
	Subject   string `json:"-"`
	ListingID string `json:"listing_id"`
	SellerID  string `json:"seller_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
}

func NewListingEvent(subject string, l *Listing) ListingEvent {
	return ListingEvent{
		Subject:   subject,
		ListingID: l.ID,
		SellerID:  l.Seller.SellerID,
		Title:     l.Title,
		Status:    string(l.Status),
	}
}
