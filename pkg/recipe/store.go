package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

// Store reads entities of one tenant from the relational store. Lookups of
// single entities return ErrNotFound when nothing matches the key and
// tenant.
type Store interface {
	Package(ctx context.Context, tenant uuid.UUID, id string) (*models.Package, error)

	DocumentTemplate(ctx context.Context, tenant uuid.UUID, id string) (*models.DocumentTemplate, error)
	DocumentTemplateAssets(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateAsset, error)
	DocumentTemplateFiles(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateFile, error)
	DocumentTemplateFormats(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateFormat, error)
	DocumentTemplateFormatSteps(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateFormatStep, error)

	Questionnaire(ctx context.Context, tenant, id uuid.UUID) (*models.Questionnaire, error)
	QuestionnaireEvents(ctx context.Context, tenant, questionnaireID uuid.UUID) ([]models.QuestionnaireEvent, error)
	QuestionnaireFiles(ctx context.Context, tenant, questionnaireID uuid.UUID) ([]models.QuestionnaireFile, error)
	QuestionnaireVersions(ctx context.Context, tenant, questionnaireID uuid.UUID) ([]models.QuestionnaireVersion, error)

	Document(ctx context.Context, tenant, id uuid.UUID) (*models.Document, error)
}

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) Package(ctx context.Context, tenant uuid.UUID, id string) (*models.Package, error) {
	var p models.Package
	if err := p.Get(s.conn(ctx), id, tenant); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) DocumentTemplate(ctx context.Context, tenant uuid.UUID, id string) (*models.DocumentTemplate, error) {
	var dt models.DocumentTemplate
	if err := dt.Get(s.conn(ctx), id, tenant); err != nil {
		return nil, translate(err)
	}
	return &dt, nil
}

func (s *GormStore) DocumentTemplateAssets(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateAsset, error) {
	return models.GetDocumentTemplateAssets(s.conn(ctx), templateID, tenant)
}

func (s *GormStore) DocumentTemplateFiles(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateFile, error) {
	return models.GetDocumentTemplateFiles(s.conn(ctx), templateID, tenant)
}

func (s *GormStore) DocumentTemplateFormats(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateFormat, error) {
	return models.GetDocumentTemplateFormats(s.conn(ctx), templateID, tenant)
}

func (s *GormStore) DocumentTemplateFormatSteps(ctx context.Context, tenant uuid.UUID, templateID string) ([]models.DocumentTemplateFormatStep, error) {
	return models.GetDocumentTemplateFormatSteps(s.conn(ctx), templateID, tenant)
}

func (s *GormStore) Questionnaire(ctx context.Context, tenant, id uuid.UUID) (*models.Questionnaire, error) {
	var q models.Questionnaire
	if err := q.Get(s.conn(ctx), id, tenant); err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (s *GormStore) QuestionnaireEvents(ctx context.Context, tenant, questionnaireID uuid.UUID) ([]models.QuestionnaireEvent, error) {
	return models.GetQuestionnaireEvents(s.conn(ctx), questionnaireID, tenant)
}

func (s *GormStore) QuestionnaireFiles(ctx context.Context, tenant, questionnaireID uuid.UUID) ([]models.QuestionnaireFile, error) {
	return models.GetQuestionnaireFiles(s.conn(ctx), questionnaireID, tenant)
}

func (s *GormStore) QuestionnaireVersions(ctx context.Context, tenant, questionnaireID uuid.UUID) ([]models.QuestionnaireVersion, error) {
	return models.GetQuestionnaireVersions(s.conn(ctx), questionnaireID, tenant)
}

func (s *GormStore) Document(ctx context.Context, tenant, id uuid.UUID) (*models.Document, error) {
	var d models.Document
	if err := d.Get(s.conn(ctx), id, tenant); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}
