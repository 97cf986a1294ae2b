package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	GenderMale   = "male"
	GenderFemale = "female"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo"`
	Gender    string    `json:"gender"`
	Role      string    `json:"role"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Created() time.Time { return u.CreatedAt }

// Age is the number of full years between the date of birth and now.
func (u User) Age(now time.Time) int {
	age := now.Year() - u.DOB.Year()
	if now.Month() < u.DOB.Month() || (now.Month() == u.DOB.Month() && now.Day() < u.DOB.Day()) {
		age--
	}
	return age
}

type UserQuery struct {
	Gender  string
	Role    string
	Created TimeRange
}
