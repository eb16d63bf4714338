package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a debit or transfer exceeds the available balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidReference indicates a reference to a resource that does not exist (e.g. the owning user).
var ErrInvalidReference = errors.New("referenced resource does not exist")

// ErrNonZeroBalance indicates an operation that requires a zero balance (e.g. account deletion).
var ErrNonZeroBalance = errors.New("account balance is not zero")
