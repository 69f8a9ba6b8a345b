// Package entity defines the domain entities for the players feature.
package entity

import (
	"time"

	gamesentity "gameshelf_backend/internal/feature/games/domain/entity"
)

// DefaultAvatarURL is served for players who never uploaded an avatar.
const DefaultAvatarURL = "/avatars/default.png"

// Player represents a registered player in the system.
// It contains authentication credentials, profile data and the favourites set.
type Player struct {
	// ID is the unique identifier for the player.
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is the login identifier. It must be unique across all players.
	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`

	// Email is the player's email address. It must be unique across all players.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash of the player's password.
	// This must never store a plaintext password and is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// AvatarURL points at the player's uploaded avatar, or the default asset.
	AvatarURL string `gorm:"size:512" json:"avatarUrl"`

	// FavoriteGames is the player's favourites set. The join table gives it
	// set semantics: a (player, game) pair appears at most once.
	FavoriteGames []gamesentity.Game `gorm:"many2many:player_favorite_games" json:"favoriteGames,omitempty"`

	// CreatedAt is the timestamp when the player was created.
	CreatedAt time.Time `json:"created"`

	// UpdatedAt is the timestamp when the player was last updated.
	UpdatedAt time.Time `json:"updated"`
}
