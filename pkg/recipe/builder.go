// Package recipe builds seed recipes: portable zip bundles of SQL scripts,
// object-store payloads and a JSON manifest that replay a selection of one
// tenant's packages, document templates, questionnaires and documents into
// another tenant or deployment.
//
// A build walks the references of the selected entities depth first,
// emitting every entity exactly once and always after the entities it
// depends on. Tenant columns are written as TenantPlaceholder and cloned
// entities get "{{-UUID[n]-}}" tokens; both are substituted by the importer.
package recipe

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Builder produces recipe archives. A Builder holds no per-build state and
// may be shared by concurrent builds.
type Builder struct {
	store   Store
	objects ObjectReader
	logger  hclog.Logger
}

// NewBuilder returns a Builder reading rows from store and payloads from
// objects.
func NewBuilder(store Store, objects ObjectReader, logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{
		store:   store,
		objects: objects,
		logger:  logger.Named("recipe"),
	}
}

// Build resolves everything the instruction selects and returns the zip
// archive. Any failure aborts the build and no bytes are returned.
func (b *Builder) Build(ctx context.Context, instr *Instruction) ([]byte, error) {
	if err := instr.Validate(); err != nil {
		return nil, err
	}

	log := b.logger.With("recipe", instr.Name, "tenant", instr.TenantUUID)
	log.Info("building recipe",
		"packages", len(instr.Packages),
		"document_templates", len(instr.DocumentTemplates),
		"questionnaires", len(instr.Questionnaires),
		"documents", len(instr.Documents))

	st := newBuildState(instr.TenantUUID, b.objects)

	for _, ref := range instr.Packages {
		if err := b.resolvePackage(ctx, st, ref); err != nil {
			return nil, err
		}
	}
	for _, ref := range instr.DocumentTemplates {
		if err := b.resolveDocumentTemplate(ctx, st, ref); err != nil {
			return nil, err
		}
	}
	for _, ref := range instr.Questionnaires {
		if err := b.resolveQuestionnaire(ctx, st, ref); err != nil {
			return nil, err
		}
	}
	for _, ref := range instr.Documents {
		if err := b.resolveDocument(ctx, st, ref); err != nil {
			return nil, err
		}
	}

	manifest := NewManifest(instr, st.archive.Scripts(), st.uuids.Count())
	data, err := manifest.Marshal()
	if err != nil {
		return nil, err
	}
	if err := st.archive.AddManifest(manifest.FileName(), data); err != nil {
		return nil, fmt.Errorf("error adding manifest: %w", err)
	}

	archive, err := st.archive.Close()
	if err != nil {
		return nil, err
	}

	log.Info("recipe built",
		"scripts", len(manifest.DB.Scripts),
		"uuid_tokens", manifest.UUIDs.Count,
		"bytes", len(archive))
	return archive, nil
}
