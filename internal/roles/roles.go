// Package roles defines the fixed permission ladder over role tags.
package roles

import "strings"

// Role tags ordered by increasing permission level.
const (
	// User is the base field-worker role.
	User = "user"
	// Engineer3 is a third-category engineer.
	Engineer3 = "engineer3"
	// Engineer2 is a second-category engineer.
	Engineer2 = "engineer2"
	// Engineer1 is a first-category engineer.
	Engineer1 = "engineer1"
	// EngineerP is an engineer-programmer.
	EngineerP = "engineerp"
	// Leader is a team leader.
	Leader = "leader"
	// Boss is the top-level supervisor role.
	Boss = "boss"
)

// levels is the total order over recognized role tags.
var levels = map[string]int{
	User:      1,
	Engineer3: 2,
	Engineer2: 3,
	Engineer1: 4,
	EngineerP: 5,
	Leader:    6,
	Boss:      7,
}

// displayNames maps role tags to presentation names.
var displayNames = map[string]string{
	User:      "Worker",
	Engineer3: "Engineer, 3rd category",
	Engineer2: "Engineer, 2nd category",
	Engineer1: "Engineer, 1st category",
	EngineerP: "Engineer-programmer",
	Leader:    "Team leader",
	Boss:      "Supervisor",
}

// Normalize lowercases a role tag for comparison and storage.
func Normalize(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsValid reports whether the tag is a recognized role.
func IsValid(role string) bool {
	_, ok := levels[Normalize(role)]
	return ok
}

// HasPermission reports whether the actual role meets the required level.
// Unknown tags on either side fail closed.
func HasPermission(actual, required string) bool {
	actualLevel, okActual := levels[Normalize(actual)]
	requiredLevel, okRequired := levels[Normalize(required)]
	if !okActual || !okRequired {
		return false
	}
	return actualLevel >= requiredLevel
}

// DisplayName returns the presentation name for a role tag.
// Unrecognized tags are returned unchanged; this is display-only.
func DisplayName(role string) string {
	if name, ok := displayNames[Normalize(role)]; ok {
		return name
	}
	return role
}
