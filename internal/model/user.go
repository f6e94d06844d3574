package model

// User is an account record as returned by the users endpoints.  The
// password never travels back from the service.
type User struct {
	ID        int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// UserDraft is the body of POST /users/create.  Only admins reach this
// endpoint; the role must be one of the two known values.
type UserDraft struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=50"`
	Role      string `json:"role" validate:"required,oneof=client admin"`
}

// UserPatch carries only the fields that changed on an edit.
type UserPatch map[string]any
