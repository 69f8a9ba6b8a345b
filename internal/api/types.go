// Package api defines the shared request/response envelope types used by
// every HTTP handler in the application.
package api

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for successful requests that
// carry no entity payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginUser is the subset of player fields echoed back on a successful login.
type LoginUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is the JSON body returned by POST /auth/login.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// UploadResponse is the JSON body returned by POST /upload/avatar.
type UploadResponse struct {
	AvatarURL string `json:"avatarUrl"`
	Filename  string `json:"filename"`
}

// InsightResponse is the JSON body returned by GET /api/games/:gameId/insight.
type InsightResponse struct {
	GameID  uint   `json:"gameId"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}
