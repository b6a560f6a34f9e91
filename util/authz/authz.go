// Package authz holds the single ownership check shared by every service.
package authz

import "shareit/util/apperr"

// RequireOwner rejects the call with a validation error unless the caller is
// the resource owner. The original surface reports authorization failures as
// 400, not 403, so the error kind stays Validation.
func RequireOwner(ownerID, callerID int64, msg string) error {
	if ownerID != callerID {
		return apperr.Validation(msg)
	}
	return nil
}
