package docuchat

import "github.com/docuchat/docuchat-go/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrInvalidInput  = domain.ErrInvalidInput
	ErrTransport     = domain.ErrTransport
	ErrEmptyQuery    = domain.ErrEmptyQuery
	ErrQueryInFlight = domain.ErrQueryInFlight
)
