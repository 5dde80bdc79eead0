package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantContents is the set of entities of one tenant that can be picked
// into a recipe instruction.
type TenantContents struct {
	Packages          []Package          `json:"packages"`
	DocumentTemplates []DocumentTemplate `json:"documentTemplates"`
	Questionnaires    []Questionnaire    `json:"questionnaires"`
	Documents         []Document         `json:"documents"`
}

// GetTenantContents lists all packages, released document templates,
// questionnaires and finished persistent documents of a tenant.
func GetTenantContents(db *gorm.DB, tenant uuid.UUID) (*TenantContents, error) {
	var (
		contents TenantContents
		err      error
	)

	if contents.Packages, err = GetPackages(db, tenant); err != nil {
		return nil, fmt.Errorf("error listing packages: %w", err)
	}
	if contents.DocumentTemplates, err = GetReleasedDocumentTemplates(db, tenant); err != nil {
		return nil, fmt.Errorf("error listing document templates: %w", err)
	}
	if contents.Questionnaires, err = GetQuestionnaires(db, tenant); err != nil {
		return nil, fmt.Errorf("error listing questionnaires: %w", err)
	}
	if contents.Documents, err = GetFinishedDocuments(db, tenant); err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}

	return &contents, nil
}

// IsEmpty reports whether the tenant has nothing to export.
func (c *TenantContents) IsEmpty() bool {
	return len(c.Packages) == 0 &&
		len(c.DocumentTemplates) == 0 &&
		len(c.Questionnaires) == 0 &&
		len(c.Documents) == 0
}
