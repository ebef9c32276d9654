package core

import "time"

type (
	// User is the identity attached to a verified Google sign-in. The Subject
	// is the stable OIDC subject and is what letters record as their owner.
	User struct {
		Subject   string    `json:"subject"`
		Email     string    `json:"email"`
		AvatarURL string    `json:"avatarUrl"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}
)
