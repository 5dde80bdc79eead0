package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package is an immutable knowledge-model package. Packages link to each
// other through the previous, fork-of and merge-checkpoint references, which
// form a DAG.
type Package struct {
	ID                       string    `gorm:"column:id;primaryKey" json:"id"`
	Name                     string    `gorm:"column:name" json:"name"`
	OrganizationID           string    `gorm:"column:organization_id" json:"organizationId"`
	KmID                     string    `gorm:"column:km_id" json:"kmId"`
	Version                  string    `gorm:"column:version" json:"version"`
	MetamodelVersion         int       `gorm:"column:metamodel_version" json:"metamodelVersion"`
	Description              string    `gorm:"column:description" json:"description"`
	Readme                   string    `gorm:"column:readme" json:"readme"`
	License                  string    `gorm:"column:license" json:"license"`
	PreviousPackageID        *string   `gorm:"column:previous_package_id" json:"previousPackageId,omitempty"`
	ForkOfPackageID          *string   `gorm:"column:fork_of_package_id" json:"forkOfPackageId,omitempty"`
	MergeCheckpointPackageID *string   `gorm:"column:merge_checkpoint_package_id" json:"mergeCheckpointPackageId,omitempty"`
	Events                   JSON      `gorm:"column:events" json:"events"`
	CreatedAt                time.Time `gorm:"column:created_at" json:"createdAt"`
	TenantUUID               uuid.UUID `gorm:"column:tenant_uuid;type:uuid;index" json:"tenantUuid"`
	Phase                    string    `gorm:"column:phase" json:"phase"`
	NonEditable              bool      `gorm:"column:non_editable" json:"nonEditable"`
}

// TableName specifies the table name.
func (Package) TableName() string {
	return "package"
}

// Get retrieves a package by ID within a tenant.
func (p *Package) Get(db *gorm.DB, id string, tenant uuid.UUID) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}

	return db.
		Where("id = ? AND tenant_uuid = ?", id, tenant).
		First(p).
		Error
}

// Dependencies returns the IDs of the packages this package links to, in
// previous, fork-of, merge-checkpoint order. Unset links are skipped.
func (p *Package) Dependencies() []string {
	var deps []string
	for _, ref := range []*string{
		p.PreviousPackageID,
		p.ForkOfPackageID,
		p.MergeCheckpointPackageID,
	} {
		if ref != nil && *ref != "" {
			deps = append(deps, *ref)
		}
	}
	return deps
}

// GetPackages returns all packages of a tenant.
func GetPackages(db *gorm.DB, tenant uuid.UUID) ([]Package, error) {
	var packages []Package
	err := db.Where("tenant_uuid = ?", tenant).
		Order("id").
		Find(&packages).Error
	return packages, err
}
