package response

import (
	"time"

	"storefront/internal/data/entity"
)

type ProfileResponse struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

type IdentityResponse struct {
	UserID  string           `json:"user_id"`
	Email   string           `json:"email"`
	Role    entity.UserRole  `json:"role,omitempty"`
	IsAdmin bool             `json:"is_admin"`
	Profile *ProfileResponse `json:"profile"`
}

type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Identity  IdentityResponse `json:"identity"`
}

func ProfileToResponse(profile *entity.Profile) *ProfileResponse {
	if profile == nil {
		return nil
	}
	return &ProfileResponse{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Phone:     profile.Phone,
		AvatarURL: profile.AvatarURL,
	}
}
