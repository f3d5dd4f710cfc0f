package token

var keywords = map[string]Kind{
	"using":     KwUsing,
	"namespace": KwNamespace,
	"class":     KwClass,
	"struct":    KwStruct,
	"interface": KwInterface,
	"public":    KwPublic,
	"private":   KwPrivate,
	"protected": KwProtected,
	"internal":  KwInternal,
	"static":    KwStatic,
	"const":     KwConst,
	"extern":    KwExtern,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"var":       KwVar,
	"new":       KwNew,
	"this":      KwThis,
	"base":      KwBase,
	"null":      KwNull,
	"true":      KwTrue,
	"false":     KwFalse,
	"operator":  KwOperator,
	"implicit":  KwImplicit,
	"explicit":  KwExplicit,
	"get":       KwGet,
	"set":       KwSet,
	"where":     KwWhere,
	"void":      KwVoid,
	"object":    KwObject,
	"string":    KwString,
	"bool":      KwBool,
	"char":      KwChar,
	"sbyte":     KwSByte,
	"byte":      KwByte,
	"short":     KwShort,
	"ushort":    KwUShort,
	"int":       KwInt,
	"uint":      KwUInt,
	"long":      KwLong,
	"ulong":     KwULong,
	"float":     KwFloat,
	"double":    KwDouble,
	"decimal":   KwDecimal,
}

// contextual keywords only act as keywords in specific positions; everywhere
// else the parser treats them as identifiers.
var contextual = map[Kind]bool{
	KwVar:   true,
	KwGet:   true,
	KwSet:   true,
	KwWhere: true,
}

// LookupKeyword returns the keyword kind for ident.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsContextual reports whether k may also be used as an identifier.
func (k Kind) IsContextual() bool { return contextual[k] }
