package closures

import "errors"

var (
	// ErrInvalidAmount is returned for amounts that are not positive finite numbers
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrNegativeBalance is returned when an account is opened below zero
	ErrNegativeBalance = errors.New("initial balance must be a non-negative number")
)
