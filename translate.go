package blockweaver

// Translator looks up UI strings shown by edit controls. Lookups are pure and
// synchronous; a missing key translates to itself.
type Translator interface {
	Translate(key string) string
}

type TranslatorFunc func(key string) string

func (f TranslatorFunc) Translate(key string) string { return f(key) }

// IdentityTranslator returns every key unchanged.
var IdentityTranslator Translator = TranslatorFunc(func(key string) string { return key })
