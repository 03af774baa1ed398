package config

import "github.com/pkg/errors"

// Failure kinds surfaced by the generator. Callers match them with errors.Is;
// the concrete error carries the numbers that caused it.
var (
	ErrInsufficientTopics = errors.New("insufficient topics for requested quota")
	ErrInsufficientNodes  = errors.New("insufficient nodes for replica count")
	ErrInvalidParameter   = errors.New("invalid parameter")
)
