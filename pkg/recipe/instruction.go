package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Instruction names the entities to put into one recipe.
type Instruction struct {
	Name              string                `json:"name" yaml:"name"`
	Description       string                `json:"description,omitempty" yaml:"description,omitempty"`
	TenantUUID        uuid.UUID             `json:"tenantUuid" yaml:"tenantUuid"`
	Packages          []PackageRef          `json:"packages" yaml:"packages"`
	DocumentTemplates []DocumentTemplateRef `json:"documentTemplates" yaml:"documentTemplates"`
	Questionnaires    []QuestionnaireRef    `json:"questionnaires" yaml:"questionnaires"`
	Documents         []DocumentRef         `json:"documents" yaml:"documents"`
}

// PackageRef selects a package.
type PackageRef struct {
	ID                  string `json:"id" yaml:"id"`
	IncludeDependencies bool   `json:"includeDependencies" yaml:"includeDependencies"`
}

// DocumentTemplateRef selects a document template with everything it owns.
type DocumentTemplateRef struct {
	ID string `json:"id" yaml:"id"`
}

// QuestionnaireRef selects a questionnaire.
type QuestionnaireRef struct {
	UUID                uuid.UUID `json:"uuid" yaml:"uuid"`
	NewUUID             bool      `json:"newUuid" yaml:"newUuid"`
	Anonymize           bool      `json:"anonymize" yaml:"anonymize"`
	IncludeDependencies bool      `json:"includeDependencies" yaml:"includeDependencies"`
	IncludeVersions     bool      `json:"includeVersions" yaml:"includeVersions"`
}

// DocumentRef selects a document.
type DocumentRef struct {
	UUID                uuid.UUID `json:"uuid" yaml:"uuid"`
	NewUUID             bool      `json:"newUuid" yaml:"newUuid"`
	Anonymize           bool      `json:"anonymize" yaml:"anonymize"`
	IncludeDependencies bool      `json:"includeDependencies" yaml:"includeDependencies"`
}

// Format is the encoding of an instruction file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the instruction format from a file extension,
// defaulting to JSON.
func FormatFromPath(p string) Format {
	lower := strings.ToLower(p)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// ParseInstruction decodes and validates an instruction.
func ParseInstruction(data []byte, format Format) (*Instruction, error) {
	instr, err := DecodeInstruction(data, format)
	if err != nil {
		return nil, err
	}
	if err := instr.Validate(); err != nil {
		return nil, err
	}
	return instr, nil
}

// DecodeInstruction decodes an instruction without validating it.
func DecodeInstruction(data []byte, format Format) (*Instruction, error) {
	var instr Instruction

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &instr)
	case FormatJSON:
		err = json.Unmarshal(data, &instr)
	default:
		err = fmt.Errorf("unsupported instruction format: %s", format)
	}
	if err != nil {
		return nil, &Error{
			Op:  "DecodeInstruction",
			Err: fmt.Errorf("%w: %w", ErrValidation, err),
		}
	}
	return &instr, nil
}

// Validate reports every problem of the instruction at once.
func (i *Instruction) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(i,
		validation.Field(&i.Name, validation.Required, validation.By(noPathSeparator)),
		validation.Field(&i.TenantUUID, validation.By(notNilUUID)),
	); err != nil {
		result = multierror.Append(result, err)
	}

	for n, ref := range i.Packages {
		if err := validation.Validate(ref.ID, validation.Required); err != nil {
			result = multierror.Append(result, fmt.Errorf("packages[%d].id: %w", n, err))
		}
	}
	for n, ref := range i.DocumentTemplates {
		if err := validation.Validate(ref.ID, validation.Required); err != nil {
			result = multierror.Append(result, fmt.Errorf("documentTemplates[%d].id: %w", n, err))
		}
	}
	for n, ref := range i.Questionnaires {
		if err := validation.Validate(ref.UUID, validation.By(notNilUUID)); err != nil {
			result = multierror.Append(result, fmt.Errorf("questionnaires[%d].uuid: %w", n, err))
		}
	}
	for n, ref := range i.Documents {
		if err := validation.Validate(ref.UUID, validation.By(notNilUUID)); err != nil {
			result = multierror.Append(result, fmt.Errorf("documents[%d].uuid: %w", n, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return &Error{
			Op:  "Validate",
			Err: fmt.Errorf("%w: %w", ErrValidation, err),
		}
	}
	return nil
}

func notNilUUID(value interface{}) error {
	var id uuid.UUID
	switch v := value.(type) {
	case uuid.UUID:
		id = v
	case string:
		id, _ = uuid.Parse(v)
	}
	if id == uuid.Nil {
		return errors.New("must be a non-nil UUID")
	}
	return nil
}

// The name becomes the manifest's file name at the archive root.
func noPathSeparator(value interface{}) error {
	name, _ := value.(string)
	if strings.ContainsAny(name, `/\`) {
		return errors.New("must not contain path separators")
	}
	return nil
}
