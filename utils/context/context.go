package context

import (
	"context"

	"github.com/muhammadheryan/picking-engine/constant"
)

// GetPickerID returns the authenticated picker id from the request context.
func GetPickerID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// GetOrgID returns the authenticated organization id from the request context.
func GetOrgID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.OrgIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
