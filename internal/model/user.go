package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the stored identity record. PasswordHash and Salt never leave the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Salt         []byte    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name,omitempty"`
	Addresses    []Address `json:"addresses"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the sanitized user: the only shape placed in tokens, sessions and
// login responses.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role}
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Profile is what GET /users/own returns.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name,omitempty"`
	Addresses []Address `json:"addresses"`
}

func (u User) Profile() Profile {
	addresses := u.Addresses
	if addresses == nil {
		addresses = []Address{}
	}
	return Profile{ID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name, Addresses: addresses}
}

type Address struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	PinCode string `json:"pin_code,omitempty"`
}
