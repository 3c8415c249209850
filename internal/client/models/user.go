// Package models defines the records exchanged with the SGR Sensor API.
package models

// User is the profile returned by the API. Passwords never travel back.
type User struct {
	ID        int64     `json:"id"`
	CompanyID *int64    `json:"company_id,omitempty"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	Created   Timestamp `json:"created_date,omitzero"`
}

// FullName joins name and last name for display.
func (u *User) FullName() string {
	switch {
	case u.Name == "":
		return u.LastName
	case u.LastName == "":
		return u.Name
	}
	return u.Name + " " + u.LastName
}

// Credentials is the body of a login call.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser is the body of a user creation (registration) call.
type NewUser struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate carries the editable user fields. The backend re-hashes the
// password on every update, so it is always sent.
type UserUpdate struct {
	Name     string `json:"name,omitempty"`
	LastName string `json:"last_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}
