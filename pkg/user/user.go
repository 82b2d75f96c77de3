package user

// User is an authenticated account. Events are owned by exactly one user and
// are always scoped by Id.
type User struct {
	Id          string
	Email       string
	DisplayName string
	Timezone    string
	// PasswordHash is empty for provider-only accounts.
	PasswordHash string
}
