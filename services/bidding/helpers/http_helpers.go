package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"bazario-bidding/internal/auctionerrors"
	"bazario-bidding/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Admission rejections keep the violated threshold in the error text so the
// client can construct a valid retry.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrOutcomeNotFound):
		return http.StatusNotFound, "auction outcome not found"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidFirstBid):
		return http.StatusConflict, "first bid must equal the base price"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAuctionNotOpen):
		return http.StatusConflict, "auction is not open"
	case errors.Is(err, auctionerrors.ErrSelfSellerBid):
		return http.StatusForbidden, "seller may not bid on own listing"
	case errors.Is(err, auctionerrors.ErrCancellationNotAllowed):
		return http.StatusConflict, "listing cannot be cancelled"
	case errors.Is(err, auctionerrors.ErrSettlementNotAllowed):
		return http.StatusConflict, "listing cannot be settled"
	case errors.Is(err, auctionerrors.ErrBusy):
		return http.StatusTooManyRequests, "listing is busy, retry shortly"
	case errors.Is(err, auctionerrors.ErrVersionConflict):
		return http.StatusConflict, "listing state changed, retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
