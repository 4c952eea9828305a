package domain

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	KeyUserID   ContextKey = "userID"
	KeyUserRole ContextKey = "userRole"
)
