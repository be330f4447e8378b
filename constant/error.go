package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrSessionNotFound
	ErrSessionNotActive
	ErrSessionNotPaused
	ErrNoOrdersAvailable
	ErrInvalidStrategy
	ErrItemNotFound
	ErrAlreadyPicked
	ErrWrongLocation
	ErrQuantityExceeded
	ErrOrderClaimConflict
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrSessionNotFound:    "picking session not found",
	ErrSessionNotActive:   "picking session is not active",
	ErrSessionNotPaused:   "picking session is not paused",
	ErrNoOrdersAvailable:  "no orders available for picking",
	ErrInvalidStrategy:    "unknown picking strategy",
	ErrItemNotFound:       "item not found in picking list",
	ErrAlreadyPicked:      "item already fully picked",
	ErrWrongLocation:      "scanned location does not match",
	ErrQuantityExceeded:   "quantity exceeds required amount",
	ErrOrderClaimConflict: "order already claimed by another session",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusBadRequest,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrSessionNotFound:    http.StatusNotFound,
	ErrSessionNotActive:   http.StatusConflict,
	ErrSessionNotPaused:   http.StatusConflict,
	ErrNoOrdersAvailable:  http.StatusBadRequest,
	ErrInvalidStrategy:    http.StatusBadRequest,
	ErrItemNotFound:       http.StatusBadRequest,
	ErrAlreadyPicked:      http.StatusBadRequest,
	ErrWrongLocation:      http.StatusBadRequest,
	ErrQuantityExceeded:   http.StatusBadRequest,
	ErrOrderClaimConflict: http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrSessionNotFound:    "0005",
	ErrSessionNotActive:   "0006",
	ErrSessionNotPaused:   "0007",
	ErrNoOrdersAvailable:  "0008",
	ErrInvalidStrategy:    "0009",
	ErrItemNotFound:       "0010",
	ErrAlreadyPicked:      "0011",
	ErrWrongLocation:      "0012",
	ErrQuantityExceeded:   "0013",
	ErrOrderClaimConflict: "0014",
}
