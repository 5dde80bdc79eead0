package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document state and durability values used to pick exportable documents.
const (
	DoneDocumentState            = "DoneDocumentState"
	PersistentDocumentDurability = "PersistentDocumentDurability"
)

// Document is a rendered questionnaire. Its payload, when present, lives in
// object storage under the document's UUID.
type Document struct {
	UUID                     uuid.UUID  `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	Name                     string     `gorm:"column:name" json:"name"`
	State                    string     `gorm:"column:state" json:"state"`
	Durability               string     `gorm:"column:durability" json:"durability"`
	QuestionnaireUUID        uuid.UUID  `gorm:"column:questionnaire_uuid;type:uuid;index" json:"questionnaireUuid"`
	QuestionnaireEventUUID   uuid.UUID  `gorm:"column:questionnaire_event_uuid;type:uuid" json:"questionnaireEventUuid"`
	QuestionnaireRepliesHash int64      `gorm:"column:questionnaire_replies_hash" json:"questionnaireRepliesHash"`
	DocumentTemplateID       string     `gorm:"column:document_template_id" json:"documentTemplateId"`
	FormatUUID               uuid.UUID  `gorm:"column:format_uuid;type:uuid" json:"formatUuid"`
	CreatedBy                *uuid.UUID `gorm:"column:created_by;type:uuid" json:"-"`
	FileName                 *string    `gorm:"column:file_name" json:"fileName,omitempty"`
	ContentType              *string    `gorm:"column:content_type" json:"contentType,omitempty"`
	FileSize                 *int64     `gorm:"column:file_size" json:"fileSize,omitempty"`
	WorkerLog                *string    `gorm:"column:worker_log" json:"-"`
	RetrievedAt              *time.Time `gorm:"column:retrieved_at" json:"retrievedAt,omitempty"`
	FinishedAt               *time.Time `gorm:"column:finished_at" json:"finishedAt,omitempty"`
	TenantUUID               uuid.UUID  `gorm:"column:tenant_uuid;type:uuid;primaryKey" json:"tenantUuid"`
	CreatedAt                time.Time  `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name.
func (Document) TableName() string {
	return "document"
}

// Get retrieves a document by UUID within a tenant.
func (d *Document) Get(db *gorm.DB, id, tenant uuid.UUID) error {
	return db.
		Where("uuid = ? AND tenant_uuid = ?", id, tenant).
		First(d).
		Error
}

// HasPayload reports whether a rendered file was stored for the document.
func (d *Document) HasPayload() bool {
	return d.FileName != nil && *d.FileName != ""
}

// GetFinishedDocuments returns the persistent, fully rendered documents of a
// tenant.
func GetFinishedDocuments(db *gorm.DB, tenant uuid.UUID) ([]Document, error) {
	var documents []Document
	err := db.Where("tenant_uuid = ? AND state = ? AND durability = ?",
		tenant, DoneDocumentState, PersistentDocumentDurability).
		Order("name, uuid").
		Find(&documents).Error
	return documents, err
}
