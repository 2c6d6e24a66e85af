package domain

import "context"

// User is a local account backed by an external identity provider subject.
// FirebaseUID is immutable; the profile fields are captured at first
// authentication and not refreshed on subsequent logins.
type User struct {
	ID          int32  `json:"id"`
	FirebaseUID string `json:"firebaseUid"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Picture     string `json:"picture"`
}

// UserRepository defines storage operations for users
type UserRepository interface {
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	// CreateOrGet inserts the user if no row exists for its FirebaseUID and
	// returns the persisted row either way. Implementations must resolve a
	// concurrent first-authentication race through the unique constraint on
	// firebase_uid, not by surfacing the constraint violation.
	CreateOrGet(ctx context.Context, user *User) (*User, error)
}
