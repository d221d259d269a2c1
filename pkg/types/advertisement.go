package types

import "time"

type AdPlacement string

const (
	AdPlacementHome   AdPlacement = "HOME"
	AdPlacementBrowse AdPlacement = "BROWSE"
)

type Advertisement struct {
	ID       string `db:"id"`
	AgencyID string `db:"agency_id"`

	Title     string      `db:"title" form:"title"`
	ImageKey  *string     `db:"image_key"`
	TargetURL string      `db:"target_url" form:"target_url"`
	Placement AdPlacement `db:"placement" form:"placement"`

	StartsAt time.Time `db:"starts_at"`
	EndsAt   time.Time `db:"ends_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ActiveAt reports whether the ad should be shown at t.
func (a *Advertisement) ActiveAt(t time.Time) bool {
	return !t.Before(a.StartsAt) && t.Before(a.EndsAt)
}
