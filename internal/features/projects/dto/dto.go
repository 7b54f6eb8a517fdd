package projects_dto

import (
	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=80"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Memberships []MembershipResponseDTO `json:"memberships"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	UserID uuid.UUID               `json:"user_id" binding:"required"`
	Role   users_enums.ProjectRole `json:"role"    binding:"required"`
}

type MembershipResponseDTO struct {
	UserID uuid.UUID               `json:"user_id"`
	Role   users_enums.ProjectRole `json:"role"`
}

type GetMembersResponseDTO struct {
	Memberships []MembershipResponseDTO `json:"memberships"`
}
