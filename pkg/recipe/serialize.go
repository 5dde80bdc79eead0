package recipe

import (
	"fmt"
	"strings"

	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

// Row serializers. Each returns the INSERT statements for one entity or one
// owned sub-collection with columns in the order of the target table.
// Columns pointing at users (created_by) are always written as NULL because
// users are not part of a recipe.

func packageInsert(p *models.Package) (string, error) {
	events, err := jsonText(p.Events)
	if err != nil {
		return "", fmt.Errorf("package %q events: %w", p.ID, err)
	}

	return newInsert("package").
		set("id", quote(p.ID)).
		set("name", quote(p.Name)).
		set("organization_id", quote(p.OrganizationID)).
		set("km_id", quote(p.KmID)).
		set("version", quote(p.Version)).
		set("metamodel_version", integer(p.MetamodelVersion)).
		set("description", quote(p.Description)).
		set("readme", quote(p.Readme)).
		set("license", quote(p.License)).
		set("previous_package_id", optText(p.PreviousPackageID)).
		set("fork_of_package_id", optText(p.ForkOfPackageID)).
		set("merge_checkpoint_package_id", optText(p.MergeCheckpointPackageID)).
		set("events", events).
		set("created_at", timestamp(p.CreatedAt)).
		tenant().
		set("phase", quote(p.Phase)).
		set("non_editable", boolean(p.NonEditable)).
		String(), nil
}

func documentTemplateInsert(dt *models.DocumentTemplate) (string, error) {
	allowed, err := jsonText(dt.AllowedPackages)
	if err != nil {
		return "", fmt.Errorf("document template %q allowed packages: %w", dt.ID, err)
	}

	return newInsert("document_template").
		set("id", quote(dt.ID)).
		set("name", quote(dt.Name)).
		set("organization_id", quote(dt.OrganizationID)).
		set("template_id", quote(dt.TemplateID)).
		set("version", quote(dt.Version)).
		set("metamodel_version", quote(dt.MetamodelVersion)).
		set("description", quote(dt.Description)).
		set("readme", quote(dt.Readme)).
		set("license", quote(dt.License)).
		set("allowed_packages", allowed).
		set("created_at", timestamp(dt.CreatedAt)).
		tenant().
		set("updated_at", timestamp(dt.UpdatedAt)).
		set("phase", quote(dt.Phase)).
		set("non_editable", boolean(dt.NonEditable)).
		String(), nil
}

func documentTemplateAssetsInsert(assets []models.DocumentTemplateAsset) string {
	var b strings.Builder
	for _, a := range assets {
		b.WriteString(newInsert("document_template_asset").
			set("document_template_id", quote(a.DocumentTemplateID)).
			set("uuid", uuidText(a.UUID)).
			set("file_name", quote(a.FileName)).
			set("content_type", quote(a.ContentType)).
			tenant().
			set("file_size", integer(a.FileSize)).
			set("created_at", timestamp(a.CreatedAt)).
			set("updated_at", timestamp(a.UpdatedAt)).
			String())
	}
	return b.String()
}

func documentTemplateFilesInsert(files []models.DocumentTemplateFile) string {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(newInsert("document_template_file").
			set("document_template_id", quote(f.DocumentTemplateID)).
			set("uuid", uuidText(f.UUID)).
			set("file_name", quote(f.FileName)).
			set("content", quote(f.Content)).
			tenant().
			set("created_at", timestamp(f.CreatedAt)).
			set("updated_at", timestamp(f.UpdatedAt)).
			String())
	}
	return b.String()
}

func documentTemplateFormatsInsert(formats []models.DocumentTemplateFormat) string {
	var b strings.Builder
	for _, f := range formats {
		b.WriteString(newInsert("document_template_format").
			set("document_template_id", quote(f.DocumentTemplateID)).
			set("uuid", uuidText(f.UUID)).
			set("name", quote(f.Name)).
			set("icon", quote(f.Icon)).
			tenant().
			set("created_at", timestamp(f.CreatedAt)).
			set("updated_at", timestamp(f.UpdatedAt)).
			String())
	}
	return b.String()
}

func documentTemplateFormatStepsInsert(steps []models.DocumentTemplateFormatStep) (string, error) {
	var b strings.Builder
	for _, s := range steps {
		options, err := jsonText(s.Options)
		if err != nil {
			return "", fmt.Errorf("format step %s/%d options: %w", s.FormatUUID, s.Position, err)
		}
		b.WriteString(newInsert("document_template_format_step").
			set("document_template_id", quote(s.DocumentTemplateID)).
			set("format_uuid", uuidText(s.FormatUUID)).
			set("position", integer(s.Position)).
			set("name", quote(s.Name)).
			set("options", options).
			tenant().
			set("created_at", timestamp(s.CreatedAt)).
			set("updated_at", timestamp(s.UpdatedAt)).
			String())
	}
	return b.String(), nil
}

// questionnaireInsert writes the questionnaire row under id, which is either
// its original UUID or an issued token.
func questionnaireInsert(id string, q *models.Questionnaire) string {
	return newInsert("questionnaire").
		set("uuid", quote(id)).
		set("name", quote(q.Name)).
		set("visibility", quote(q.Visibility)).
		set("sharing", quote(q.Sharing)).
		set("package_id", quote(q.PackageID)).
		set("selected_question_tag_uuids", array(q.SelectedQuestionTagUUIDs.Strings(), "::uuid[]")).
		set("document_template_id", optText(q.DocumentTemplateID)).
		set("format_uuid", optUUID(q.FormatUUID)).
		set("created_by", sqlNull).
		set("created_at", timestamp(q.CreatedAt)).
		set("updated_at", timestamp(q.UpdatedAt)).
		set("description", optText(q.Description)).
		set("is_template", boolean(q.IsTemplate)).
		set("squashed", boolean(q.Squashed)).
		tenant().
		set("project_tags", array(q.ProjectTags, "")).
		String()
}

func questionnaireEventsInsert(questionnaireID string, events []models.QuestionnaireEvent) (string, error) {
	var b strings.Builder
	for _, e := range events {
		raw, err := optJSON(e.ValueRaw)
		if err != nil {
			return "", fmt.Errorf("event %s raw value: %w", e.UUID, err)
		}
		b.WriteString(newInsert("questionnaire_event").
			set("uuid", uuidText(e.UUID)).
			set("event_type", quote(e.EventType)).
			set("path", optText(e.Path)).
			set("created_at", timestamp(e.CreatedAt)).
			set("created_by", sqlNull).
			set("questionnaire_uuid", quote(questionnaireID)).
			tenant().
			set("value_type", optText(e.ValueType)).
			set("value", array(e.Value, "")).
			set("value_id", optText(e.ValueID)).
			set("value_raw", raw).
			String())
	}
	return b.String(), nil
}

func questionnaireFilesInsert(questionnaireID string, files []models.QuestionnaireFile) string {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(newInsert("questionnaire_file").
			set("uuid", uuidText(f.UUID)).
			set("file_name", quote(f.FileName)).
			set("content_type", quote(f.ContentType)).
			set("file_size", integer(f.FileSize)).
			set("questionnaire_uuid", quote(questionnaireID)).
			set("created_by", sqlNull).
			tenant().
			set("created_at", timestamp(f.CreatedAt)).
			String())
	}
	return b.String()
}

func questionnaireVersionsInsert(questionnaireID string, versions []models.QuestionnaireVersion) string {
	var b strings.Builder
	for _, v := range versions {
		b.WriteString(newInsert("questionnaire_version").
			set("uuid", uuidText(v.UUID)).
			set("name", quote(v.Name)).
			set("description", optText(v.Description)).
			set("event_uuid", uuidText(v.EventUUID)).
			set("questionnaire_uuid", quote(questionnaireID)).
			tenant().
			set("created_by", sqlNull).
			set("created_at", timestamp(v.CreatedAt)).
			set("updated_at", timestamp(v.UpdatedAt)).
			String())
	}
	return b.String()
}

// documentInsert writes the document row under id, pointing at the
// questionnaire under questionnaireID. Both may be issued tokens.
func documentInsert(id, questionnaireID string, d *models.Document) string {
	return newInsert("document").
		set("uuid", quote(id)).
		set("name", quote(d.Name)).
		set("state", quote(d.State)).
		set("durability", quote(d.Durability)).
		set("questionnaire_uuid", quote(questionnaireID)).
		set("questionnaire_event_uuid", uuidText(d.QuestionnaireEventUUID)).
		set("questionnaire_replies_hash", integer(d.QuestionnaireRepliesHash)).
		set("document_template_id", quote(d.DocumentTemplateID)).
		set("format_uuid", uuidText(d.FormatUUID)).
		set("created_by", sqlNull).
		set("retrieved_at", optTimestamp(d.RetrievedAt)).
		set("finished_at", optTimestamp(d.FinishedAt)).
		set("created_at", timestamp(d.CreatedAt)).
		set("file_name", optText(d.FileName)).
		set("content_type", optText(d.ContentType)).
		set("worker_log", optText(d.WorkerLog)).
		tenant().
		set("file_size", optInteger(d.FileSize)).
		String()
}
