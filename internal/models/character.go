package models

import "time"

// Character holds the canonical, never-mutated definition of a story character.
// Every field except ID and CreatedAt is fixed at creation; no operation in
// this service mutates a stored character.
type Character struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	CanonicalAppearance string    `json:"canonicalAppearance"`
	Personality         string    `json:"personality"`
	EmotionalBaseline   string    `json:"emotionalBaseline"`
	// ImmutableTraits is semantically a set of short canon facts; order is
	// preserved only for display.
	ImmutableTraits []string  `json:"immutableTraits"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CharacterCreate carries the canon fields supplied by the client when a new
// character is created. The service assigns ID and CreatedAt.
type CharacterCreate struct {
	Name                string   `json:"name"`
	CanonicalAppearance string   `json:"canonicalAppearance"`
	Personality         string   `json:"personality"`
	EmotionalBaseline   string   `json:"emotionalBaseline"`
	ImmutableTraits     []string `json:"immutableTraits"`
}
