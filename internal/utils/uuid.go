package utils

import "github.com/google/uuid"

// UUIDGenerator issues draft identifiers. UUIDv7 keeps drafts roughly
// time-ordered in the database; falls back to v4 if v7 generation fails.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
