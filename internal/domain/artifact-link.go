package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArtifactKind is the closed set of linkable entity kinds. The string values
// are wire-stable.
type ArtifactKind string

const (
	KindDocument ArtifactKind = "document"
	KindProcess  ArtifactKind = "process"
	KindTask     ArtifactKind = "task"
	KindDiagram  ArtifactKind = "diagram"
)

// ParseArtifactKind coerces a wire value into the enum.
func ParseArtifactKind(value string) (ArtifactKind, bool) {
	switch ArtifactKind(value) {
	case KindDocument, KindProcess, KindTask, KindDiagram:
		return ArtifactKind(value), true
	}
	return "", false
}

// ArtifactRef is the resolved identity of a link endpoint.
type ArtifactRef struct {
	ID        string
	CompanyID string
}

// ArtifactLink is a directed edge between two artifacts of the same company.
// The unique index on the natural key backs idempotent creation: concurrent
// duplicate creates are rejected by the store, not only by the service check.
type ArtifactLink struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	FromID       string       `gorm:"type:uuid;not null;uniqueIndex:uidx_artifact_links_pair;index" json:"from_id"`
	FromType     ArtifactKind `gorm:"type:varchar(20);not null;uniqueIndex:uidx_artifact_links_pair" json:"from_type"`
	ToID         string       `gorm:"type:uuid;not null;uniqueIndex:uidx_artifact_links_pair;index" json:"to_id"`
	ToType       ArtifactKind `gorm:"type:varchar(20);not null;uniqueIndex:uidx_artifact_links_pair" json:"to_type"`
	RelationType *string      `json:"relation_type,omitempty"`
	CompanyID    string       `gorm:"type:uuid;not null;index" json:"company_id"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (l *ArtifactLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// References reports whether the link touches the given entity id as source
// or destination.
func (l *ArtifactLink) References(entityID string) bool {
	return l.FromID == entityID || l.ToID == entityID
}
