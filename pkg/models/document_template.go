package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReleasedDocumentTemplatePhase is the phase of templates offered for export.
const ReleasedDocumentTemplatePhase = "ReleasedDocumentTemplatePhase"

// DocumentTemplate is a document template together with the rows it owns
// (assets, files, formats and format steps).
type DocumentTemplate struct {
	ID               string    `gorm:"column:id;primaryKey" json:"id"`
	Name             string    `gorm:"column:name" json:"name"`
	OrganizationID   string    `gorm:"column:organization_id" json:"organizationId"`
	TemplateID       string    `gorm:"column:template_id" json:"templateId"`
	Version          string    `gorm:"column:version" json:"version"`
	MetamodelVersion string    `gorm:"column:metamodel_version" json:"metamodelVersion"`
	Description      string    `gorm:"column:description" json:"description"`
	Readme           string    `gorm:"column:readme" json:"readme"`
	License          string    `gorm:"column:license" json:"license"`
	AllowedPackages  JSON      `gorm:"column:allowed_packages" json:"allowedPackages"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	TenantUUID       uuid.UUID `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Phase            string    `gorm:"column:phase" json:"phase"`
	NonEditable      bool      `gorm:"column:non_editable" json:"nonEditable"`
}

// TableName specifies the table name.
func (DocumentTemplate) TableName() string {
	return "document_template"
}

// Get retrieves a document template by ID within a tenant.
func (dt *DocumentTemplate) Get(db *gorm.DB, id string, tenant uuid.UUID) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}

	return db.
		Where("id = ? AND tenant_uuid = ?", id, tenant).
		First(dt).
		Error
}

// DocumentTemplateAsset is a binary asset of a template. The payload lives
// in object storage.
type DocumentTemplateAsset struct {
	DocumentTemplateID string    `gorm:"column:document_template_id;index" json:"documentTemplateId"`
	UUID               uuid.UUID `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	FileName           string    `gorm:"column:file_name" json:"fileName"`
	ContentType        string    `gorm:"column:content_type" json:"contentType"`
	TenantUUID         uuid.UUID `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	FileSize           int64     `gorm:"column:file_size" json:"fileSize"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name.
func (DocumentTemplateAsset) TableName() string {
	return "document_template_asset"
}

// DocumentTemplateFile is a text file of a template.
type DocumentTemplateFile struct {
	DocumentTemplateID string    `gorm:"column:document_template_id;index" json:"documentTemplateId"`
	UUID               uuid.UUID `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	FileName           string    `gorm:"column:file_name" json:"fileName"`
	Content            string    `gorm:"column:content" json:"content"`
	TenantUUID         uuid.UUID `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name.
func (DocumentTemplateFile) TableName() string {
	return "document_template_file"
}

// DocumentTemplateFormat is an output format offered by a template.
type DocumentTemplateFormat struct {
	DocumentTemplateID string    `gorm:"column:document_template_id;index" json:"documentTemplateId"`
	UUID               uuid.UUID `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	Name               string    `gorm:"column:name" json:"name"`
	Icon               string    `gorm:"column:icon" json:"icon"`
	TenantUUID         uuid.UUID `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name.
func (DocumentTemplateFormat) TableName() string {
	return "document_template_format"
}

// DocumentTemplateFormatStep is one step of a format's rendering pipeline.
type DocumentTemplateFormatStep struct {
	DocumentTemplateID string    `gorm:"column:document_template_id;primaryKey" json:"documentTemplateId"`
	FormatUUID         uuid.UUID `gorm:"column:format_uuid;type:uuid;primaryKey" json:"formatUuid"`
	Position           int       `gorm:"column:position;primaryKey;autoIncrement:false" json:"position"`
	Name               string    `gorm:"column:name" json:"name"`
	Options            JSON      `gorm:"column:options" json:"options"`
	TenantUUID         uuid.UUID `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name.
func (DocumentTemplateFormatStep) TableName() string {
	return "document_template_format_step"
}

// GetDocumentTemplateAssets returns the assets of a template.
func GetDocumentTemplateAssets(db *gorm.DB, templateID string, tenant uuid.UUID) ([]DocumentTemplateAsset, error) {
	var assets []DocumentTemplateAsset
	err := db.Where("document_template_id = ? AND tenant_uuid = ?", templateID, tenant).
		Order("created_at, uuid").
		Find(&assets).Error
	return assets, err
}

// GetDocumentTemplateFiles returns the files of a template.
func GetDocumentTemplateFiles(db *gorm.DB, templateID string, tenant uuid.UUID) ([]DocumentTemplateFile, error) {
	var files []DocumentTemplateFile
	err := db.Where("document_template_id = ? AND tenant_uuid = ?", templateID, tenant).
		Order("created_at, uuid").
		Find(&files).Error
	return files, err
}

// GetDocumentTemplateFormats returns the formats of a template.
func GetDocumentTemplateFormats(db *gorm.DB, templateID string, tenant uuid.UUID) ([]DocumentTemplateFormat, error) {
	var formats []DocumentTemplateFormat
	err := db.Where("document_template_id = ? AND tenant_uuid = ?", templateID, tenant).
		Order("created_at, uuid").
		Find(&formats).Error
	return formats, err
}

// GetDocumentTemplateFormatSteps returns the steps of all formats of a
// template, grouped by format and ordered by position.
func GetDocumentTemplateFormatSteps(db *gorm.DB, templateID string, tenant uuid.UUID) ([]DocumentTemplateFormatStep, error) {
	var steps []DocumentTemplateFormatStep
	err := db.Where("document_template_id = ? AND tenant_uuid = ?", templateID, tenant).
		Order("format_uuid, position").
		Find(&steps).Error
	return steps, err
}

// GetReleasedDocumentTemplates returns the released templates of a tenant.
func GetReleasedDocumentTemplates(db *gorm.DB, tenant uuid.UUID) ([]DocumentTemplate, error) {
	var templates []DocumentTemplate
	err := db.Where("tenant_uuid = ? AND phase = ?", tenant, ReleasedDocumentTemplatePhase).
		Order("id").
		Find(&templates).Error
	return templates, err
}
