package dto

type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	FullName  string  `json:"full_name"`
	Position  *string `json:"position,omitempty"`
	Role      string  `json:"role,omitempty"`
	CompanyID *string `json:"company_id,omitempty"`
}

type UpdateUserRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Position  *string `json:"position,omitempty"`
	Role      *string `json:"role,omitempty"`
	CompanyID *string `json:"company_id,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func (r UpdateUserRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.FullName != nil {
		fields["full_name"] = *r.FullName
	}
	if r.Position != nil {
		fields["position"] = *r.Position
	}
	if r.Role != nil {
		fields["role"] = *r.Role
	}
	if r.CompanyID != nil {
		fields["company_id"] = *r.CompanyID
	}
	if r.Active != nil {
		fields["active"] = *r.Active
	}
	return fields
}
