package response

import "github.com/riversidetc/club-api/internal/domain"

type LoginResponse struct {
	Token string         `json:"token"`
	User  domain.Account `json:"user"`
}
