package models

import "strings"

// Community is the category tag a post is filed under. The set is closed.
type Community string

const (
	CommunityHistory  Community = "History"
	CommunityFood     Community = "Food"
	CommunityPets     Community = "Pets"
	CommunityHealth   Community = "Health"
	CommunityFashion  Community = "Fashion"
	CommunityExercise Community = "Exercise"
	CommunityOthers   Community = "Others"
)

// Communities lists every valid community in display order.
var Communities = []Community{
	CommunityHistory,
	CommunityFood,
	CommunityPets,
	CommunityHealth,
	CommunityFashion,
	CommunityExercise,
	CommunityOthers,
}

// Valid reports whether c is one of the known communities. Matching is exact.
func (c Community) Valid() bool {
	for _, known := range Communities {
		if c == known {
			return true
		}
	}
	return false
}

// InvalidCommunityMessage is the validation message for an unknown community.
func InvalidCommunityMessage() string {
	names := make([]string, len(Communities))
	for i, c := range Communities {
		names[i] = string(c)
	}
	return "Invalid community type. Must be one of: " + strings.Join(names, ", ")
}
