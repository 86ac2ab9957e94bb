package response

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Auth is the token/user pair returned by login and register, and the exact
// JSON blob persisted by the session storage.
type Auth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
