// Package locale renders the user facing strings of the service through a
// golang.org/x/text message catalog. Turkish is the default language.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"wm-backend/internal/model"
)

var supported = []language.Tag{language.Turkish, language.English}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Turkish))
	for key, msg := range turkish {
		_ = b.SetString(language.Turkish, key, msg)
	}
	for key, msg := range english {
		_ = b.SetString(language.English, key, msg)
	}
	return b
}

// Translator formats catalog messages and domain labels for one language.
type Translator struct {
	tag     language.Tag
	base    string
	printer *message.Printer
}

// New returns a Translator for lang ("tr", "en", or any BCP 47 tag).
// Unsupported languages fall back to Turkish.
func New(lang string) *Translator {
	tag := language.Turkish
	if parsed, err := language.Parse(lang); err == nil {
		matcher := language.NewMatcher(supported)
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	base, _ := tag.Base()
	return &Translator{
		tag:     tag,
		base:    base.String(),
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

func (t *Translator) Language() language.Tag { return t.tag }

// T renders the message registered under key.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// FieldLabel returns the display label of a manageable field. Unknown
// names are returned unchanged.
func (t *Translator) FieldLabel(f model.FieldName) string {
	if label, ok := fieldLabels[t.base][f]; ok {
		return label
	}
	return string(f)
}

// LookupFieldLabel is FieldLabel with an explicit miss.
func (t *Translator) LookupFieldLabel(f model.FieldName) (string, bool) {
	label, ok := fieldLabels[t.base][f]
	return label, ok
}

func (t *Translator) CapabilityLabel(c model.Capability) string {
	if label, ok := capabilityLabels[t.base][c]; ok {
		return label
	}
	return string(c)
}

func (t *Translator) LevelLabel(l model.Level) string {
	if label, ok := levelLabels[t.base][l]; ok {
		return label
	}
	return string(l)
}

func (t *Translator) ActionLabel(a model.Action) string {
	if label, ok := actionLabels[t.base][a]; ok {
		return label
	}
	return string(a)
}

// StatusText returns the localized name of a derived work status.
func (t *Translator) StatusText(s model.StatusCode) string {
	switch s {
	case model.StatusCompleted:
		return t.T(StatusCompleted)
	case model.StatusPrinting:
		return t.T(StatusPrinting)
	default:
		return t.T(StatusWaiting)
	}
}

// YesNo renders a boolean as the localized yes/no word.
func (t *Translator) YesNo(v bool) string {
	if v {
		return t.T(ValueYes)
	}
	return t.T(ValueNo)
}
