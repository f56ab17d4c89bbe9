package application

import "errors"

var (
	// ErrAccountAlreadyDerived is returned when adding a seed account at an
	// index already used by another account of the profile.
	ErrAccountAlreadyDerived = errors.New("an account is already derived at the given seed index")
	// ErrAccountNotInProfile ...
	ErrAccountNotInProfile = errors.New("account does not belong to profile")
)
