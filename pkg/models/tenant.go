package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is one isolated customer space of the source deployment.
type Tenant struct {
	UUID     uuid.UUID `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	TenantID string    `gorm:"column:tenant_id;uniqueIndex" json:"tenantId"`
	Name     string    `gorm:"column:name" json:"name"`
}

// TableName specifies the table name.
func (Tenant) TableName() string {
	return "tenant"
}

// GetTenants returns every tenant ordered by its public identifier.
func GetTenants(db *gorm.DB) ([]Tenant, error) {
	var tenants []Tenant
	err := db.Order("tenant_id").Find(&tenants).Error
	return tenants, err
}
