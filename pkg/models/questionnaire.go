package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Questionnaire is a project filled in against a knowledge-model package.
// Its replies are kept as an append-only event log.
type Questionnaire struct {
	UUID                     uuid.UUID   `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	Name                     string      `gorm:"column:name" json:"name"`
	Visibility               string      `gorm:"column:visibility" json:"visibility"`
	Sharing                  string      `gorm:"column:sharing" json:"sharing"`
	PackageID                string      `gorm:"column:package_id" json:"packageId"`
	SelectedQuestionTagUUIDs UUIDArray   `gorm:"column:selected_question_tag_uuids" json:"selectedQuestionTagUuids"`
	DocumentTemplateID       *string     `gorm:"column:document_template_id" json:"documentTemplateId"`
	FormatUUID               *uuid.UUID  `gorm:"column:format_uuid;type:uuid" json:"formatUuid"`
	CreatedBy                *uuid.UUID  `gorm:"column:created_by;type:uuid" json:"-"`
	CreatedAt                time.Time   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt                time.Time   `gorm:"column:updated_at" json:"updatedAt"`
	Description              *string     `gorm:"column:description" json:"description,omitempty"`
	IsTemplate               bool        `gorm:"column:is_template" json:"isTemplate"`
	Squashed                 bool        `gorm:"column:squashed" json:"squashed"`
	TenantUUID               uuid.UUID   `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	ProjectTags              StringArray `gorm:"column:project_tags" json:"projectTags"`
}

// TableName specifies the table name.
func (Questionnaire) TableName() string {
	return "questionnaire"
}

// Get retrieves a questionnaire by UUID within a tenant.
func (q *Questionnaire) Get(db *gorm.DB, id, tenant uuid.UUID) error {
	return db.
		Where("uuid = ? AND tenant_uuid = ?", id, tenant).
		First(q).
		Error
}

// QuestionnaireEvent is one entry of a questionnaire's edit history.
type QuestionnaireEvent struct {
	UUID              uuid.UUID   `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	EventType         string      `gorm:"column:event_type" json:"eventType"`
	Path              *string     `gorm:"column:path" json:"path,omitempty"`
	CreatedAt         time.Time   `gorm:"column:created_at" json:"createdAt"`
	CreatedBy         *uuid.UUID  `gorm:"column:created_by;type:uuid" json:"-"`
	QuestionnaireUUID uuid.UUID   `gorm:"column:questionnaire_uuid;type:uuid;index" json:"questionnaireUuid"`
	TenantUUID        uuid.UUID   `gorm:"column:tenant_uuid;type:uuid" json:"tenantUuid"`
	ValueType         *string     `gorm:"column:value_type" json:"valueType,omitempty"`
	Value             StringArray `gorm:"column:value" json:"value,omitempty"`
	ValueID           *string     `gorm:"column:value_id" json:"valueId,omitempty"`
	ValueRaw          JSON        `gorm:"column:value_raw" json:"valueRaw,omitempty"`
}

// TableName specifies the table name.
func (QuestionnaireEvent) TableName() string {
	return "questionnaire_event"
}

// QuestionnaireFile is a binary attachment uploaded to a questionnaire.
type QuestionnaireFile struct {
	UUID              uuid.UUID  `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	FileName          string     `gorm:"column:file_name" json:"fileName"`
	ContentType       string     `gorm:"column:content_type" json:"contentType"`
	FileSize          int64      `gorm:"column:file_size" json:"fileSize"`
	QuestionnaireUUID uuid.UUID  `gorm:"column:questionnaire_uuid;type:uuid;index" json:"questionnaireUuid"`
	CreatedBy         *uuid.UUID `gorm:"column:created_by;type:uuid" json:"-"`
	TenantUUID        uuid.UUID  `gorm:"column:tenant_uuid;type:uuid" json:"tenantUuid"`
	CreatedAt         time.Time  `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name.
func (QuestionnaireFile) TableName() string {
	return "questionnaire_file"
}

// QuestionnaireVersion is a named snapshot pointing at one event.
type QuestionnaireVersion struct {
	UUID              uuid.UUID  `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	Name              string     `gorm:"column:name" json:"name"`
	Description       *string    `gorm:"column:description" json:"description,omitempty"`
	EventUUID         uuid.UUID  `gorm:"column:event_uuid;type:uuid" json:"eventUuid"`
	QuestionnaireUUID uuid.UUID  `gorm:"column:questionnaire_uuid;type:uuid;index" json:"questionnaireUuid"`
	TenantUUID        uuid.UUID  `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	CreatedBy         *uuid.UUID `gorm:"column:created_by;type:uuid" json:"-"`
	CreatedAt         time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt         time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name.
func (QuestionnaireVersion) TableName() string {
	return "questionnaire_version"
}

// GetQuestionnaireEvents returns the event log of a questionnaire in the
// order it was written.
func GetQuestionnaireEvents(db *gorm.DB, questionnaireUUID, tenant uuid.UUID) ([]QuestionnaireEvent, error) {
	var events []QuestionnaireEvent
	err := db.Where("questionnaire_uuid = ? AND tenant_uuid = ?", questionnaireUUID, tenant).
		Order("created_at, uuid").
		Find(&events).Error
	return events, err
}

// GetQuestionnaireFiles returns the attachments of a questionnaire.
func GetQuestionnaireFiles(db *gorm.DB, questionnaireUUID, tenant uuid.UUID) ([]QuestionnaireFile, error) {
	var files []QuestionnaireFile
	err := db.Where("questionnaire_uuid = ? AND tenant_uuid = ?", questionnaireUUID, tenant).
		Order("created_at, uuid").
		Find(&files).Error
	return files, err
}

// GetQuestionnaireVersions returns the named versions of a questionnaire.
func GetQuestionnaireVersions(db *gorm.DB, questionnaireUUID, tenant uuid.UUID) ([]QuestionnaireVersion, error) {
	var versions []QuestionnaireVersion
	err := db.Where("questionnaire_uuid = ? AND tenant_uuid = ?", questionnaireUUID, tenant).
		Order("created_at, uuid").
		Find(&versions).Error
	return versions, err
}

// GetQuestionnaires returns all questionnaires of a tenant.
func GetQuestionnaires(db *gorm.DB, tenant uuid.UUID) ([]Questionnaire, error) {
	var questionnaires []Questionnaire
	err := db.Where("tenant_uuid = ?", tenant).
		Order("name, uuid").
		Find(&questionnaires).Error
	return questionnaires, err
}
