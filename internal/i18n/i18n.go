package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	files, err := filepath.Glob("locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Generate AI user stories and file them as tracker issues"

	[app_description]
	other = "MateStory turns a short feature description into a full user story (acceptance criteria, technical details, testing strategy) and creates it as an issue on GitHub or any GitHub-compatible tracker."

	[help_command_usage]
	other = "Show help"

	[factory_already_registered]
	other = "Factory '{{.FactoryName}}' is already registered"

	[story.command_usage]
	other = "Generate and file user stories"

	[story.create_usage]
	other = "Generate a user story with AI and create it as an issue"

	[story.flag_title]
	other = "Working title of the feature or task"

	[story.flag_description]
	other = "Brief description of the feature or user story"

	[story.flag_complexity]
	other = "Complexity level of the user story"

	[story.flag_duration]
	other = "Estimated duration of the user story"

	[story.flag_labels]
	other = "Comma-separated list of labels to add to the issue"

	[story.flag_assignees]
	other = "Comma-separated list of assignees for the issue"

	[story.flag_assign_me]
	other = "Assign the issue to the authenticated user"

	[story.flag_dry_run]
	other = "Generate and preview the story without creating the issue"

	[story.flag_yes]
	other = "Skip the confirmation prompt"

	[story.flag_repo]
	other = "Target repository as owner/repo (overrides config)"

	[story.flag_api_url]
	other = "Base API URL for GitHub-compatible trackers (overrides config)"

	[story.banner]
	other = "User story generation"

	[story.generating]
	other = "Generating user story..."

	[story.creating]
	other = "Creating issue..."

	[story.getting_user]
	other = "Looking up authenticated user..."

	[story.preview_title]
	other = "Issue preview"

	[story.preview_title_label]
	other = "Title"

	[story.preview_body_label]
	other = "Body"

	[story.preview_labels_label]
	other = "Labels"

	[story.preview_assignees_label]
	other = "Assignees"

	[story.preview_checklist]
	one = "{{.Count}} checklist item"
	other = "{{.Count}} checklist items"

	[story.warn_placeholder_title]
	other = "The extracted title looks like template placeholder text; it will be used as-is"

	[story.warn_unknown_labels]
	other = "These labels do not exist in the repository yet: {{.Labels}}"

	[story.warn_assignee_failed]
	other = "Could not resolve the authenticated user"

	[story.will_assign]
	other = "Issue will be assigned to {{.User}}"

	[story.dry_run_complete]
	other = "Dry run complete, no issue was created"

	[story.confirm_prompt]
	other = "Create this issue? [Y/n]"

	[story.cancelled]
	other = "Issue creation cancelled"

	[story.created_successfully]
	other = "Issue #{{.Number}} created: {{.URL}}"

	[story.error_invalid_repo]
	other = "Invalid repository format, expected owner/repo"

	[config.command_usage]
	other = "Manage MateStory configuration"

	[config.init_usage]
	other = "Initialize the configuration file"

	[config.show_usage]
	other = "Show the current configuration"

	[config.set_api_key_usage]
	other = "Set the Gemini API key"

	[config.set_lang_usage]
	other = "Set the language (en, es)"

	[config.set_vcs_usage]
	other = "Configure the target tracker (owner, repo, token, API URL)"

	[config.flag_api_key]
	other = "Gemini API key"

	[config.flag_token]
	other = "GitHub token"

	[config.flag_owner]
	other = "Repository owner"

	[config.flag_repo]
	other = "Repository name"

	[config.flag_api_url]
	other = "Base API URL for GitHub-compatible trackers"

	[config.initialized]
	other = "Configuration initialized at {{.Path}}"

	[config.saved]
	other = "Configuration saved"

	[config.current_config]
	other = "Current configuration"

	[config.error_missing_key]
	other = "An API key is required"

	[config.error_invalid_lang]
	other = "Unsupported language '{{.Lang}}'. Supported: en, es"

	[config.lang_set]
	other = "Language set to {{.Lang}}"

	[usage.summary]
	other = "Tokens used: {{.Total}} (input: {{.Input}}, output: {{.Output}})"

	[suggestion_prefix]
	other = "Hint"
	`
