package output

// T exposes a minimal i18n contract for user-facing messages.
type T interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale, key string, data map[string]any) string
	// Locale picks the supported locale best matching an Accept-Language value.
	Locale(acceptLanguage string) string
}
