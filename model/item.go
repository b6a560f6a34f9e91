package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId"`
}

// ItemWithComments is the single-item view: the item plus everything renters
// said about it.
type ItemWithComments struct {
	Item
	Comments []Comment `json:"comments"`
}

// ItemWithBookings is the owner's catalog view: each item carries its
// availability window (last finished and next upcoming approved booking).
type ItemWithBookings struct {
	Item
	LastBooking *Booking  `json:"lastBooking"`
	NextBooking *Booking  `json:"nextBooking"`
	Comments    []Comment `json:"comments"`
}

// ItemShort is the shape embedded in item-request views.
type ItemShort struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

// CreateItemReq represents item listing payload
// swagger:model CreateItemReq
type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}
