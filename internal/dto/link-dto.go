package dto

// CreateLinkRequest creates a directed link between two artifacts.
type CreateLinkRequest struct {
	FromID       string  `json:"from_id" validate:"required"`
	FromType     string  `json:"from_type" validate:"required"`
	ToID         string  `json:"to_id" validate:"required"`
	ToType       string  `json:"to_type" validate:"required"`
	RelationType *string `json:"relation_type,omitempty"`
}

// EntityLinkRequest creates a link from a parent entity (process, task,
// diagram) towards a target artifact; the source side is implied by the
// route.
type EntityLinkRequest struct {
	TargetID     string  `json:"target_id" validate:"required"`
	TargetType   string  `json:"target_type,omitempty"`
	RelationType *string `json:"relation_type,omitempty"`
}
