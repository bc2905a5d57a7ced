package domain

import "time"

// AppSettings is the single global settings row. RevealEnabled is evaluated at
// serve time against every message and thread summary; it is never stored per
// message, so flipping it retroactively changes how all history is displayed.
type AppSettings struct {
	ID              int        `json:"id" db:"id"`
	RevealEnabled   bool       `json:"reveal_enabled" db:"reveal_enabled"`
	RevealToggledAt *time.Time `json:"reveal_toggled_at" db:"reveal_toggled_at"`
}
