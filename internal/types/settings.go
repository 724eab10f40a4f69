package types

import "github.com/go-playground/validator/v10"

// Available fonts shipped with the typesetting engine.
var AvailableFonts = []string{"Calibri", "Geist", "Roboto"}

// Settings are the render options applied to a resume document.
type Settings struct {
	Font       string `json:"font" validate:"required,max=64"`
	FontSize   int    `json:"fontSize" validate:"required,min=6,max=32"`
	Locale     string `json:"locale" validate:"required,min=2,max=35"`
	TemplateID string `json:"templateId" validate:"omitempty,max=32"`
}

// DefaultSettings returns the settings used when none are provided.
func DefaultSettings() Settings {
	return Settings{
		Font:       "Calibri",
		FontSize:   12,
		Locale:     "en",
		TemplateID: "default",
	}
}

// Validate validates the Settings using the validator.
func (s *Settings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// RenderRequest is the body accepted by the render endpoint. Settings may be
// partial; they are validated once defaults have been applied.
type RenderRequest struct {
	Data     ResumeData `json:"data"`
	Settings Settings   `json:"settings" validate:"-"`
	Format   string     `json:"format,omitempty" validate:"omitempty,oneof=typ typst txt pdf svg"`
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
