package dto

type CreateCompanyRequest struct {
	Name        string  `json:"name" validate:"required"`
	TaxID       *string `json:"tax_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty"`
	TaxID       *string `json:"tax_id,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func (r UpdateCompanyRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.TaxID != nil {
		fields["tax_id"] = *r.TaxID
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Active != nil {
		fields["active"] = *r.Active
	}
	return fields
}
