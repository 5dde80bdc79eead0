package models

// ModelsToAutoMigrate lists every table the builder reads. The production
// schema is owned by the source deployment; this list is used to create
// scratch databases for tests and local experiments.
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&Tenant{},
		&Package{},
		&DocumentTemplate{},
		&DocumentTemplateAsset{},
		&DocumentTemplateFile{},
		&DocumentTemplateFormat{},
		&DocumentTemplateFormatStep{},
		&Questionnaire{},
		&QuestionnaireEvent{},
		&QuestionnaireFile{},
		&QuestionnaireVersion{},
		&Document{},
	}
}
