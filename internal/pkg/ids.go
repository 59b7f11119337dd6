package pkg

import "github.com/google/uuid"

// GenerateMatchID returns a random match identifier.
func GenerateMatchID() string {
	return uuid.NewString()
}
