package store

// UserProfile holds the facts remembered about a user.
// Empty Name or Preferences means the fact is unknown.
type UserProfile struct {
	UserID      string
	Name        string
	Preferences string
	CreatedTs   int64
	UpdatedTs   int64
}

// FindUserProfile specifies the conditions for finding a user profile.
type FindUserProfile struct {
	UserID string
}

// UpsertUserProfile specifies the data for upserting a user profile.
// Nil fields are left untouched, so setting one fact never clears the other.
type UpsertUserProfile struct {
	UserID      string
	Name        *string
	Preferences *string
}
