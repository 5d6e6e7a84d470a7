package token

var keywords = map[string]Kind{
	"type":     KwType,
	"enum":     KwEnum,
	"let":      KwLet,
	"delete":   KwDelete,
	"assert":   KwAssert,
	"keyof":    KwKeyof,
	"extends":  KwExtends,
	"infer":    KwInfer,
	"in":       KwIn,
	"readonly": KwReadonly,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
