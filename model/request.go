package model

import "time"

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"-"`
	Created     time.Time `json:"created"`
}

// ItemRequestWithItems adds the items listed in answer to the request.
type ItemRequestWithItems struct {
	ItemRequest
	Items []ItemShort `json:"items"`
}

// CreateItemRequestReq represents item-request payload
// swagger:model CreateItemRequestReq
type CreateItemRequestReq struct {
	Description string `json:"description" validate:"required"`
}
