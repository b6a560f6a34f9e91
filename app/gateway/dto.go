package gateway

import "time"

// Request shapes the gateway checks before letting traffic through. The
// backend keeps its own, looser DTOs; the gateway's carry the stricter rules.

type bookItemReq struct {
	ItemID *int64    `json:"itemId" validate:"required"`
	Start  time.Time `json:"start" validate:"required,futurelag"`
	End    time.Time `json:"end" validate:"required,futurelag"`
}

type createUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type createItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

type createRequestReq struct {
	Description string `json:"description" validate:"required"`
}

type createCommentReq struct {
	Text string `json:"text" validate:"required"`
}

var knownStates = map[string]struct{}{
	"ALL":      {},
	"CURRENT":  {},
	"PAST":     {},
	"FUTURE":   {},
	"WAITING":  {},
	"REJECTED": {},
}
