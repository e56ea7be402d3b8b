package domain

import "github.com/google/uuid"

// CanonicalID returns the lower-case hyphenated form of a UUID string. Values that do not
// parse are returned unchanged so validation can report them.
func CanonicalID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}
