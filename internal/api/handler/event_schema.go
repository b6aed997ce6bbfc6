package handler

import "time"

type eventRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Department  string    `json:"department"  validate:"required"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"   validate:"required"`
	EndsAt      time.Time `json:"ends_at"     validate:"required,gtfield=StartsAt"`
	AllDay      bool      `json:"all_day"`
}

// embedQuery captures the embeddable widget's configuration parameters.
// Defaults match the hosted widget: light theme, month grid, header on.
type embedQuery struct {
	Theme  string `query:"theme"  validate:"omitempty,oneof=light dark"`
	View   string `query:"view"   validate:"omitempty,oneof=dayGridMonth timeGridWeek"`
	Header string `query:"header" validate:"omitempty,oneof=true false"`
	Height int    `query:"height" validate:"omitempty,gt=0"`
	Event  string `query:"event"`
}
