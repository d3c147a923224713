package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// updateProfileRequest carries the writable profile fields. The id selects
// the stored record being rewritten.
type updateProfileRequest struct {
	ID        int64  `json:"id"         validate:"required"`
	Username  string `json:"username"   validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Address   string `json:"address"    validate:"required"`
}

// rolesResponse returns the comma-joined role names after a grant or revoke.
type rolesResponse struct {
	Roles string `json:"roles"`
}
