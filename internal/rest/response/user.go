package response

import (
	"time"

	"github.com/Guyuepp/blog-threads/domain"
)

const DateTimeFormat = time.RFC3339

type User struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewUserFromDomain(u domain.DisplayInfo) User {
	return User(u)
}
