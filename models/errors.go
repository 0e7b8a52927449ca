package models

import "errors"

// Domain errors shared by the stores, the sell processor and the HTTP
// layer. Controllers map these onto 4xx responses; anything else is a 500.
var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidSellRequest = errors.New("invalid sell request")
	ErrProductNotFound    = errors.New("product not found")
	ErrVariantNotFound    = errors.New("variant not found")
	ErrInsufficientStock  = errors.New("not enough stock")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrDuplicateProduct   = errors.New("product already exists")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrAccountNotFound    = errors.New("account not found")
)
