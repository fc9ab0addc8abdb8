package request

// UpdateUserRolesRequest replaces the roles of a user
type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}
