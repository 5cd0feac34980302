package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Lookups and backing stores return
// these (optionally wrapped) so handlers can translate them into domain errors.
// Input problems belong in pkg/domain-errors instead.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
