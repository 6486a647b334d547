package utils

import "github.com/google/uuid"

// GenerateUUIDv7 generates a time-ordered UUID for event rows
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 generation only fails if the entropy source does
		return uuid.New()
	}
	return id
}
