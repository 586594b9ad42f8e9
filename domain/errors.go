package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrCustomerNotFound   = fmt.Errorf("customer %w", ErrNotFound)
	ErrSellerNotFound     = fmt.Errorf("seller %w", ErrNotFound)
	ErrOfferNotFound      = fmt.Errorf("exclusive offer %w", ErrNotFound)
	ErrDuplicateFavorite  = errors.New("store is already in favorites")
	ErrInvalidAmount      = errors.New("point amount must be positive")
	ErrUnknownAction      = errors.New("unknown point action")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
)
