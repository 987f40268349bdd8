package domain

// User is the read-only identity of an employee. Identity resolution is an
// external concern; the core only needs a display name for records.
type User struct {
	Email string
	Name  string
}

// DisplayName prefers the stored name, falling back to the email
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
