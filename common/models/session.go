package models

// Session identifies an authenticated user as validated by the hosted auth
// provider.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
