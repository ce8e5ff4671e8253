package ports

// Translator looks up localized strings.
//
//go:generate go run go.uber.org/mock/mockgen -source=translator.go -destination=mocks/mock_translator.go -package=mocks
type Translator interface {
	// Translate returns the translation of key for locale, or key itself when
	// no translation exists.
	Translate(key, locale string) string
}
