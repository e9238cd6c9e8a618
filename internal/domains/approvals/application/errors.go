package application

import "errors"

var (
	// ErrInvalidToken signals a missing, expired, or forged capability token.
	// No external call was made.
	ErrInvalidToken = errors.New("invalid or expired approval token")

	// ErrAlreadyRejected signals an approval attempt on an order whose
	// workflow already ended in rejection. The first terminal tag wins.
	ErrAlreadyRejected = errors.New("order was already rejected")

	// ErrAlreadySent signals a rejection attempt on an order that was
	// already forwarded to the vendor.
	ErrAlreadySent = errors.New("order was already sent to the vendor")
)
