package models

// User is the profile record returned by the auth gateway.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// Session pairs the gateway credential token with the signed-in user.
// A nil *Session means logged out.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
