// Package entity defines the domain entities for the insights feature.
package entity

// GameInsight is a generated blurb about a catalog game.
type GameInsight struct {
	// GameID identifies the game the blurb was generated for.
	GameID uint

	// Title is the game's title at generation time.
	Title string

	// Summary is the generated text.
	Summary string
}
