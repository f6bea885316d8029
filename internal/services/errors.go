package services

import "errors"

var (
	ErrEmailTaken       = errors.New("email has already been taken")
	ErrClientEmailTaken = errors.New("client email has already been taken")
	ErrRoleNotFound     = errors.New("role not found")
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrNoPersonalTeam   = errors.New("personal team not found")
)
