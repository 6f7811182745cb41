package i18n

import (
	"embed"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"sojasapi/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var supported = []language.Tag{language.English, language.Dutch}

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	matcher         language.Matcher
	defaultLanguage language.Tag
	logger          *slog.Logger
}

// NewTranslator builds a Translator backed by go-i18n using the given default
// locale (e.g. "en"). Unknown locales fall back to English.
func NewTranslator(defaultLocale string, logger *slog.Logger) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.nl.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Error("i18n: failed to load message file", "file", file, "err", err)
		}
	}

	// The matcher's first tag is its fallback.
	tags := append([]language.Tag{tag}, supported...)

	return &Translator{
		bundle:          bundle,
		matcher:         language.NewMatcher(tags),
		defaultLanguage: tag,
		logger:          logger,
	}
}

// Locale picks the best supported locale for an Accept-Language header value.
func (t *Translator) Locale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.defaultLanguage.String()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLanguage.String()
	}
	_, idx, _ := t.matcher.Match(tags...)
	base, _ := t.tagAt(idx).Base()
	return base.String()
}

func (t *Translator) tagAt(idx int) language.Tag {
	if idx == 0 {
		return t.defaultLanguage
	}
	return supported[idx-1]
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Warn("i18n: localize failed", "key", key, "locales", languages, "err", err)
		return key
	}
	return msg
}
