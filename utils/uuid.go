package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random UUIDv4 string, used for listing and bid IDs
func GenerateID() string {
	return uuid.NewString()
}
