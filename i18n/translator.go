// Package i18n translates user-facing strings. Message keys are the English
// source strings, so an untranslated key renders as itself.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Translator interface {
	Translate(locale, key string, args ...any) string
}

// Message keys used by the application form.
const (
	MsgPhoneTooShort = "Mobile number is too short."
	MsgSubmitted     = "%s, your application is being submitted!"
	MsgSave          = "Save"

	MsgTitleName         = "Name"
	MsgTitleMail         = "Email"
	MsgTitleNumber       = "Mobile no"
	MsgTitleDOB          = "DOB"
	MsgTitleGender       = "Gender"
	MsgTitleMessage      = "Any Message"
	MsgTitleConfirmation = "Are you above 18 years old?"
	MsgTitleCopy         = "Send me a copy of the application."
	MsgPlaceholderMsg    = "Enter your message"

	MsgFemale = "Female"
	MsgMale   = "Male"
	MsgYes    = "Yes"
	MsgNo     = "No"
)

var spanish = map[string]string{
	MsgPhoneTooShort:     "El número de móvil es demasiado corto.",
	MsgSubmitted:         "%s, ¡su solicitud se está enviando!",
	MsgSave:              "Guardar",
	MsgTitleName:         "Nombre",
	MsgTitleMail:         "Correo electrónico",
	MsgTitleNumber:       "Número de móvil",
	MsgTitleDOB:          "Fecha de nacimiento",
	MsgTitleGender:       "Género",
	MsgTitleMessage:      "Mensaje",
	MsgTitleConfirmation: "¿Es mayor de 18 años?",
	MsgTitleCopy:         "Enviarme una copia de la solicitud.",
	MsgPlaceholderMsg:    "Escriba su mensaje",
	MsgFemale:            "Mujer",
	MsgMale:              "Hombre",
	MsgYes:               "Sí",
	MsgNo:                "No",
}

// Catalog is a Translator backed by an x/text message catalog.
type Catalog struct {
	builder   *catalog.Builder
	languages []language.Tag
	matcher   language.Matcher
	fallback  language.Tag
}

// NewCatalog builds the catalog with English as fallback.
func NewCatalog() (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range spanish {
		if err := b.SetString(language.Spanish, key, msg); err != nil {
			return nil, err
		}
	}
	// English is listed first so the matcher falls back to it.
	langs := []language.Tag{language.English, language.Spanish}
	return &Catalog{
		builder:   b,
		languages: langs,
		matcher:   language.NewMatcher(langs),
		fallback:  language.English,
	}, nil
}

// Languages returns the supported locales.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.languages))
	for _, tag := range c.languages {
		out = append(out, tag.String())
	}
	return out
}

// Translate formats key for locale. locale may be a single tag or an
// Accept-Language header value.
func (c *Catalog) Translate(locale, key string, args ...any) string {
	p := message.NewPrinter(c.match(locale), message.Catalog(c.builder))
	return p.Sprintf(key, args...)
}

func (c *Catalog) match(locale string) language.Tag {
	if locale == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.languages[idx]
}

// Identity returns keys unchanged apart from argument formatting.
type Identity struct{}

func (Identity) Translate(_ string, key string, args ...any) string {
	return message.NewPrinter(language.English).Sprintf(key, args...)
}
