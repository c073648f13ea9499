package dto

import "time"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserLoginResponse struct {
	UserID    uint      `json:"id"`
	UserName  string    `json:"name"`
	UserEmail string    `json:"email"`
	UserRole  int       `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
