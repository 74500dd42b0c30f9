package auth

import "strings"

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if strings.TrimSpace(dto.Email) == "" {
		return ValidationError("email is required")
	}
	if !strings.Contains(dto.Email, "@") {
		return ValidationError("email is invalid")
	}
	if dto.Password == "" {
		return ValidationError("password is required")
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return ValidationError("refresh token is required")
	}
	return nil
}
