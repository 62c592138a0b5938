package domain

// ID is used across domain entities.
type ID int64

// RequestContext carries the authenticated caller into services so role
// checks never depend on ambient session state.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (rc RequestContext) IsAdmin() bool { return rc.Role == "admin" }

func (rc RequestContext) CanApprove() bool {
	return rc.Role == "admin" || rc.Role == "staff"
}
