package models

// User is an admin account allowed to mutate the catalog.
type User struct {
	ID           string
	Login        string
	PasswordHash []byte
}
