package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidDataset marks configuration errors: the dataset itself is
	// malformed or inconsistent and must not be trusted, even partially.
	// Query-scope "nothing scheduled" outcomes are nil results, never this.
	ErrInvalidDataset = errors.New("invalid dataset")

	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
