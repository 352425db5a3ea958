package user

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // never return
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	Profile
}

// Profile holds the free-form contact fields a user can edit.
type Profile struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Age     string `json:"age"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	DOB     string `json:"dob"`
}
