package dto

import (
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
)

// PortalLoginRequest represents a student portal login.
type PortalLoginRequest struct {
	RollNo   string `json:"rollNo" binding:"required" example:"0007ST250003"`
	Password string `json:"password" binding:"required"`
}

// PortalLoginResponse carries the portal session token and the student.
type PortalLoginResponse struct {
	Token   string          `json:"token"`
	Student *models.Student `json:"student"`
}
