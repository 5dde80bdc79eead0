package recipe

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
)

// lookupError turns a failed single-entity lookup into the build error.
func lookupError(op string, kind Kind, key string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return notFound(op, string(kind), key)
	}
	return fmt.Errorf("%s: error loading %s %q: %w", op, kind, key, err)
}

// resolvePackage emits a package after the packages it links to when
// dependencies are requested.
func (b *Builder) resolvePackage(ctx context.Context, st *buildState, ref PackageRef) error {
	if !st.markSeen(KindPackage, ref.ID) {
		return nil
	}

	pkg, err := b.store.Package(ctx, st.tenant, ref.ID)
	if err != nil {
		return lookupError("resolvePackage", KindPackage, ref.ID, err)
	}

	if ref.IncludeDependencies {
		for _, dep := range pkg.Dependencies() {
			if err := b.resolvePackage(ctx, st, PackageRef{
				ID:                  dep,
				IncludeDependencies: true,
			}); err != nil {
				return err
			}
		}
	}

	sql, err := packageInsert(pkg)
	if err != nil {
		return err
	}
	p := st.archive.packageScriptPath(ref.ID)
	b.logger.Debug("adding package", "id", ref.ID, "path", p)
	return st.archive.AddScript(p, sql)
}

// resolveDocumentTemplate emits a template and everything it owns as one
// unit: the template row, assets, files, formats, then format steps.
func (b *Builder) resolveDocumentTemplate(ctx context.Context, st *buildState, ref DocumentTemplateRef) error {
	if !st.markSeen(KindDocumentTemplate, ref.ID) {
		return nil
	}

	const op = "resolveDocumentTemplate"
	dt, err := b.store.DocumentTemplate(ctx, st.tenant, ref.ID)
	if err != nil {
		return lookupError(op, KindDocumentTemplate, ref.ID, err)
	}
	assets, err := b.store.DocumentTemplateAssets(ctx, st.tenant, ref.ID)
	if err != nil {
		return fmt.Errorf("%s: error loading assets of %q: %w", op, ref.ID, err)
	}
	files, err := b.store.DocumentTemplateFiles(ctx, st.tenant, ref.ID)
	if err != nil {
		return fmt.Errorf("%s: error loading files of %q: %w", op, ref.ID, err)
	}
	formats, err := b.store.DocumentTemplateFormats(ctx, st.tenant, ref.ID)
	if err != nil {
		return fmt.Errorf("%s: error loading formats of %q: %w", op, ref.ID, err)
	}
	steps, err := b.store.DocumentTemplateFormatSteps(ctx, st.tenant, ref.ID)
	if err != nil {
		return fmt.Errorf("%s: error loading format steps of %q: %w", op, ref.ID, err)
	}

	templateSQL, err := documentTemplateInsert(dt)
	if err != nil {
		return err
	}
	stepsSQL, err := documentTemplateFormatStepsInsert(steps)
	if err != nil {
		return err
	}

	dir := documentTemplateDir(ref.ID)
	b.logger.Debug("adding document template", "id", ref.ID, "dir", dir,
		"assets", len(assets), "files", len(files), "formats", len(formats), "steps", len(steps))

	if err := st.archive.AddScript(path.Join(dir, "01__document-template.sql"), templateSQL); err != nil {
		return err
	}
	for _, asset := range assets {
		if err := st.blobs.Collect(ctx,
			templateAssetKey(ref.ID, asset.UUID),
			templateAssetDest(ref.ID, asset.UUID),
		); err != nil {
			return err
		}
	}

	for _, script := range []struct {
		name string
		sql  string
	}{
		{"02__assets.sql", documentTemplateAssetsInsert(assets)},
		{"03__files.sql", documentTemplateFilesInsert(files)},
		{"04__formats.sql", documentTemplateFormatsInsert(formats)},
		{"05__steps.sql", stepsSQL},
	} {
		if err := st.archive.AddScript(path.Join(dir, script.name), script.sql); err != nil {
			return err
		}
	}
	return nil
}

// resolveQuestionnaire emits a questionnaire with its events and files, and
// its versions when requested. With NewUUID the questionnaire is cloned
// under a fresh token.
func (b *Builder) resolveQuestionnaire(ctx context.Context, st *buildState, ref QuestionnaireRef) error {
	if !st.markSeen(KindQuestionnaire, ref.UUID.String()) {
		return nil
	}

	const op = "resolveQuestionnaire"
	q, err := b.store.Questionnaire(ctx, st.tenant, ref.UUID)
	if err != nil {
		return lookupError(op, KindQuestionnaire, ref.UUID.String(), err)
	}

	if ref.IncludeDependencies {
		if q.PackageID != "" {
			if err := b.resolvePackage(ctx, st, PackageRef{
				ID:                  q.PackageID,
				IncludeDependencies: true,
			}); err != nil {
				return err
			}
		}
		if q.DocumentTemplateID != nil && *q.DocumentTemplateID != "" {
			if err := b.resolveDocumentTemplate(ctx, st, DocumentTemplateRef{
				ID: *q.DocumentTemplateID,
			}); err != nil {
				return err
			}
		}
	}

	events, err := b.store.QuestionnaireEvents(ctx, st.tenant, ref.UUID)
	if err != nil {
		return fmt.Errorf("%s: error loading events of %s: %w", op, ref.UUID, err)
	}
	files, err := b.store.QuestionnaireFiles(ctx, st.tenant, ref.UUID)
	if err != nil {
		return fmt.Errorf("%s: error loading files of %s: %w", op, ref.UUID, err)
	}

	id := ref.UUID.String()
	if ref.NewUUID {
		id = st.uuids.Next()
		st.uuids.Remember(KindQuestionnaire, ref.UUID, id)
	}

	eventsSQL, err := questionnaireEventsInsert(id, events)
	if err != nil {
		return err
	}

	dir := questionnaireDir(q.Name, ref.UUID)
	b.logger.Debug("adding questionnaire", "uuid", ref.UUID, "id", id, "dir", dir,
		"events", len(events), "files", len(files))

	if err := st.archive.AddScript(path.Join(dir, "01__questionnaire.sql"), questionnaireInsert(id, q)); err != nil {
		return err
	}
	if err := st.archive.AddScript(path.Join(dir, "02__events.sql"), eventsSQL); err != nil {
		return err
	}
	if err := st.archive.AddScript(path.Join(dir, "03__files.sql"), questionnaireFilesInsert(id, files)); err != nil {
		return err
	}
	for _, f := range files {
		if err := st.blobs.Collect(ctx,
			questionnaireFileKey(ref.UUID.String(), f.UUID),
			questionnaireFileKey(id, f.UUID),
		); err != nil {
			return err
		}
	}

	if ref.IncludeVersions {
		versions, err := b.store.QuestionnaireVersions(ctx, st.tenant, ref.UUID)
		if err != nil {
			return fmt.Errorf("%s: error loading versions of %s: %w", op, ref.UUID, err)
		}
		if err := st.archive.AddScript(path.Join(dir, "04__versions.sql"), questionnaireVersionsInsert(id, versions)); err != nil {
			return err
		}
	}
	return nil
}

// resolveDocument emits a document and its payload. With dependencies, its
// template and questionnaire come first; the questionnaire inherits the
// document's flags and includes versions exactly when dependencies are
// included.
func (b *Builder) resolveDocument(ctx context.Context, st *buildState, ref DocumentRef) error {
	if !st.markSeen(KindDocument, ref.UUID.String()) {
		return nil
	}

	const op = "resolveDocument"
	d, err := b.store.Document(ctx, st.tenant, ref.UUID)
	if err != nil {
		return lookupError(op, KindDocument, ref.UUID.String(), err)
	}

	if ref.IncludeDependencies {
		if d.DocumentTemplateID != "" {
			if err := b.resolveDocumentTemplate(ctx, st, DocumentTemplateRef{
				ID: d.DocumentTemplateID,
			}); err != nil {
				return err
			}
		}
		if d.QuestionnaireUUID != uuid.Nil {
			if err := b.resolveQuestionnaire(ctx, st, QuestionnaireRef{
				UUID:                d.QuestionnaireUUID,
				NewUUID:             ref.NewUUID,
				Anonymize:           ref.Anonymize,
				IncludeDependencies: ref.IncludeDependencies,
				IncludeVersions:     ref.IncludeDependencies,
			}); err != nil {
				return err
			}
		}
	}

	questionnaireID := st.uuids.Resolve(KindQuestionnaire, d.QuestionnaireUUID)

	id := ref.UUID.String()
	if ref.NewUUID {
		id = st.uuids.Next()
		st.uuids.Remember(KindDocument, ref.UUID, id)
	}

	p := documentScriptPath(d.Name, ref.UUID)
	b.logger.Debug("adding document", "uuid", ref.UUID, "id", id,
		"questionnaire", questionnaireID, "path", p)

	if err := st.archive.AddScript(p, documentInsert(id, questionnaireID, d)); err != nil {
		return err
	}
	if d.HasPayload() {
		return st.blobs.Collect(ctx, documentKey(ref.UUID.String()), documentKey(id))
	}
	return nil
}
