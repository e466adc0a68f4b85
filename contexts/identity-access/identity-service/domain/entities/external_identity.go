package entities

import "time"

// ExternalIdentity links a principal to a verified identity-provider subject.
// (Provider, SubjectID) is unique platform-wide.
type ExternalIdentity struct {
	PrincipalID string    `json:"principal_id"`
	Provider    string    `json:"provider"`
	SubjectID   string    `json:"subject_id"`
	LinkedAt    time.Time `json:"linked_at"`
}
