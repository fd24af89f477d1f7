package domain

import "time"

// Message is a buyer inquiry attached to a listing.
type Message struct {
	ID        int64
	HomeID    int64
	BuyerID   int64
	RealtorID int64
	Body      string
	CreatedAt time.Time
}

// MessageWithBuyer is the realtor's view of an inquiry, joined with the
// buyer's contact details.
type MessageWithBuyer struct {
	Message
	BuyerName  string
	BuyerEmail string
	BuyerPhone string
}

// InquiryRequest holds parameters for sending an inquiry on a listing.
type InquiryRequest struct {
	HomeID int64
	Body   string
}

// Validate checks that the request is well-formed.
func (r *InquiryRequest) Validate() error {
	if r.Body == "" {
		return ErrValidation("message body is required")
	}
	return nil
}
