package domain

import "time"

type UserType string

const (
	UserTypeWorker     UserType = "worker"
	UserTypeRestaurant UserType = "restaurant"
)

func (t UserType) Valid() bool {
	return t == UserTypeWorker || t == UserTypeRestaurant
}

// Account records which side of the marketplace a user signed up for.
type Account struct {
	ID        string
	UserType  UserType
	CreatedAt time.Time
}
