package models

// Widget types understood by the form front end.
const (
	WidgetTextfield = "textfield"
	WidgetEmail     = "email"
	WidgetTel       = "tel"
	WidgetDate      = "date"
	WidgetSelect    = "select"
	WidgetTextarea  = "textarea"
	WidgetRadios    = "radios"
	WidgetCheckbox  = "checkbox"
	WidgetSubmit    = "submit"
)

type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FormField struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Title        string        `json:"title"`
	DefaultValue any           `json:"defaultValue"`
	Required     bool          `json:"required"`
	Options      []FieldOption `json:"options,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty"`
}

type FormAction struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Value      string `json:"value"`
	ButtonType string `json:"buttonType"`
}

type FormDefinition struct {
	ID      string       `json:"id"`
	Fields  []FormField  `json:"fields"`
	Actions []FormAction `json:"actions"`
}

// Field returns the field with the given name, or nil.
func (f *FormDefinition) Field(name string) *FormField {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}
