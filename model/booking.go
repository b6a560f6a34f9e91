package model

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Item   Item          `json:"item"`
	Booker User          `json:"booker"`
	Status BookingStatus `json:"status"`
}

// CreateBookingReq represents booking creation payload
// swagger:model CreateBookingReq
type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}
