package dto

import (
	"github.com/studymodules/auth-service/internal/auth/domain"
)

type UserOutput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewUserOutput(user *domain.User) UserOutput {
	return UserOutput{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
