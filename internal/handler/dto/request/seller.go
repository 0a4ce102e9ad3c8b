package request

import "qr-seat-reservation/internal/usecase/commands"

type CreateSellerRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"max=20"`
	Description string `json:"description" binding:"max=500"`
}

func (r CreateSellerRequest) ToParams() commands.CreateSellerParams {
	return commands.CreateSellerParams{
		Name:        r.Name,
		Address:     r.Address,
		Email:       r.Email,
		Phone:       r.Phone,
		Description: r.Description,
	}
}
