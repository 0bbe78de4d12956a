package handler

import (
	"time"

	"github.com/admindesk/directory-system/internal/core/ports"
)

// listUsersResponse is a page plus the coordinator's degradation marker:
// error is non-empty when the backend failed and the page is the empty shape.
type listUsersResponse struct {
	ports.Page
	Error string `json:"error,omitempty"`
}

type createUserRequest struct {
	FirstName  string     `json:"firstName" validate:"required"`
	LastName   string     `json:"lastName" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Role       string     `json:"role" validate:"required,oneof=admin manager viewer"`
	Status     string     `json:"status" validate:"required,oneof=active inactive suspended"`
	DateJoined *time.Time `json:"dateJoined,omitempty"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

func (r createUserRequest) toInput() ports.CreateUserInput {
	in := ports.CreateUserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      r.Role,
		Status:    r.Status,
	}
	if r.DateJoined != nil {
		in.DateJoined = *r.DateJoined
	}
	if r.LastLogin != nil {
		in.LastLogin = *r.LastLogin
	}
	return in
}

// updateUserRequest mirrors the partial-update contract: only present fields
// are merged, and nothing is re-validated on purpose.
type updateUserRequest struct {
	FirstName  *string    `json:"firstName,omitempty"`
	LastName   *string    `json:"lastName,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Role       *string    `json:"role,omitempty"`
	Status     *string    `json:"status,omitempty"`
	DateJoined *time.Time `json:"dateJoined,omitempty"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

func (r updateUserRequest) toInput() ports.UpdateUserInput {
	return ports.UpdateUserInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Role:       r.Role,
		Status:     r.Status,
		DateJoined: r.DateJoined,
		LastLogin:  r.LastLogin,
	}
}

// confirmationResponse mirrors the confirmation surface UI collaborators
// render: visibility plus the title and message of the pending request.
type confirmationResponse struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}
