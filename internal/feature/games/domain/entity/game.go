// Package entity defines the domain entities for the games feature.
package entity

import "time"

// Game represents a single catalog entry.
// Title and Genre are the only mandatory fields; everything else is
// descriptive metadata supplied at the owner's discretion.
type Game struct {
	// ID is the unique identifier for the game.
	ID uint `gorm:"primaryKey" json:"id"`

	// Title is the game's display name.
	Title string `gorm:"size:255;not null" json:"title"`

	// Genre categorizes the game (RPG, FPS, ...).
	Genre string `gorm:"size:255;not null" json:"genre"`

	// Platform names the system the game runs on.
	Platform string `gorm:"size:255" json:"platform,omitempty"`

	// ReleaseYear is the year of first release.
	ReleaseYear int `json:"releaseYear,omitempty"`

	// Developer names the studio that built the game.
	Developer string `gorm:"size:255" json:"developer,omitempty"`

	// Rating is a score in the closed range [0, 10].
	Rating float64 `json:"rating"`

	// Description is free-form text about the game.
	Description string `json:"description,omitempty"`

	// CreatedAt is the timestamp when the game was created.
	CreatedAt time.Time `json:"created"`

	// UpdatedAt is the timestamp when the game was last updated.
	UpdatedAt time.Time `json:"updated"`
}
