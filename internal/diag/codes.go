package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexUnterminatedBlock  Code = 1004
	LexBadNumber          Code = 1005

	// syntax
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectType        Code = 2004
	SynExpectExpression  Code = 2005
	SynExpectBody        Code = 2006
	SynUnclosedDelimiter Code = 2007
	SynModifierNotValid  Code = 2008

	// declarations
	SemaDuplicateMember        Code = 3001
	SemaUnknownType            Code = 3002
	SemaCyclicBase             Code = 3003
	SemaGenericTypeUnsupported Code = 3004

	// binding
	SemaNameNotFound        Code = 3005
	SemaNoOverload          Code = 3006
	SemaArgumentMismatch    Code = 3007
	SemaAmbiguousCall       Code = 3008
	SemaAmbiguousConversion Code = 3009
	SemaWrongArity          Code = 3010
	SemaInaccessible        Code = 3011
	SemaObjectRequired      Code = 3012
	SemaStaticViaInstance   Code = 3013
	SemaSelfReference       Code = 3014
	SemaNoConversion        Code = 3015
	SemaNoExplicitConv      Code = 3016
	SemaMethodGroupNotValue Code = 3017
	SemaNotAValue           Code = 3018
	SemaCircularConstant    Code = 3019
	SemaVarSelfReference    Code = 3020
	SemaNotAssignable       Code = 3021
	SemaOperatorMismatch    Code = 3022
	SemaLambdaNoTarget      Code = 3023
	SemaNotInvocable        Code = 3024
	SemaNoIndexer           Code = 3025
	SemaMemberNotFound      Code = 3026
	SemaConstraintViolated  Code = 3027
	SemaCannotInfer         Code = 3028
	SemaThisInStatic        Code = 3029
	SemaVoidValue           Code = 3030
	SemaConstNotConstant    Code = 3031
	SemaConstantOverflow    Code = 3032
	SemaDivideByZero        Code = 3033
	SemaLiteralTooLarge     Code = 3034
	SemaAbstractCreation    Code = 3035

	// I/O
	IOLoadFileError Code = 4001
)

type codeInfo struct {
	key   string
	title string
}

var codeTable = map[Code]codeInfo{
	UnknownCode:                {"ERR_Unknown", "Unknown error"},
	LexUnknownChar:             {"ERR_UnexpectedCharacter", "Unexpected character"},
	LexUnterminatedString:      {"ERR_NewlineInConst", "Unterminated string literal"},
	LexUnterminatedChar:        {"ERR_UnterminatedCharLit", "Unterminated character literal"},
	LexUnterminatedBlock:       {"ERR_OpenEndedComment", "Unterminated block comment"},
	LexBadNumber:               {"ERR_InvalidNumber", "Invalid numeric literal"},
	SynUnexpectedToken:         {"ERR_UnexpectedToken", "Unexpected token"},
	SynExpectSemicolon:         {"ERR_SemicolonExpected", "';' expected"},
	SynExpectIdentifier:        {"ERR_IdentifierExpected", "Identifier expected"},
	SynExpectType:              {"ERR_TypeExpected", "Type expected"},
	SynExpectExpression:        {"ERR_ExpressionExpected", "Expression expected"},
	SynExpectBody:              {"ERR_BodyExpected", "Member body expected"},
	SynUnclosedDelimiter:       {"ERR_UnclosedDelimiter", "Unclosed delimiter"},
	SynModifierNotValid:        {"ERR_BadMemberFlag", "Modifier is not valid here"},
	SemaDuplicateMember:        {"ERR_DuplicateNameInClass", "Duplicate member"},
	SemaUnknownType:            {"ERR_SingleTypeNameNotFound", "Type not found"},
	SemaCyclicBase:             {"ERR_CircularBase", "Circular base type dependency"},
	SemaGenericTypeUnsupported: {"ERR_GenericTypeUnsupported", "Generic type declarations are not supported"},
	SemaNameNotFound:           {"ERR_NameNotInContext", "Name does not exist in the current context"},
	SemaNoOverload:             {"ERR_BadArgCount", "No overload takes this number of arguments"},
	SemaArgumentMismatch:       {"ERR_BadArgType", "Argument type mismatch"},
	SemaAmbiguousCall:          {"ERR_AmbigCall", "Ambiguous call"},
	SemaAmbiguousConversion:    {"ERR_AmbigUDConv", "Ambiguous user-defined conversion"},
	SemaWrongArity:             {"ERR_BadArity", "Wrong number of type arguments"},
	SemaInaccessible:           {"ERR_BadAccess", "Member is inaccessible"},
	SemaObjectRequired:         {"ERR_ObjectRequired", "An object reference is required"},
	SemaStaticViaInstance:      {"ERR_ObjectProhibited", "Static member accessed through an instance"},
	SemaSelfReference:          {"INF_SelfReference", "Member body refers to its own declaration"},
	SemaNoConversion:           {"ERR_NoImplicitConv", "Cannot implicitly convert type"},
	SemaNoExplicitConv:         {"ERR_NoExplicitConv", "Cannot convert type"},
	SemaMethodGroupNotValue:    {"ERR_MethGrpToNonDel", "Method group used as a value"},
	SemaNotAValue:              {"ERR_BadSKunknown", "Name is not valid in this context"},
	SemaCircularConstant:       {"ERR_CircConstValue", "Circular constant definition"},
	SemaVarSelfReference:       {"ERR_VariableUsedBeforeDeclaration", "Implicitly typed variable refers to itself"},
	SemaNotAssignable:          {"ERR_IncrementLvalueExpected", "Operand must be a variable, property or indexer"},
	SemaOperatorMismatch:       {"ERR_BadBinaryOps", "Operator cannot be applied to operands"},
	SemaLambdaNoTarget:         {"ERR_LambdaNoTarget", "Lambda expression has no target type"},
	SemaNotInvocable:           {"ERR_NonInvocableMemberCalled", "Member is not invocable"},
	SemaNoIndexer:              {"ERR_BadIndexLHS", "Cannot apply indexing"},
	SemaMemberNotFound:         {"ERR_NoSuchMember", "Type does not contain a definition"},
	SemaConstraintViolated:     {"ERR_RefConstraintNotSatisfied", "Type argument violates a constraint"},
	SemaCannotInfer:            {"ERR_CantInferMethTypeArgs", "Type arguments cannot be inferred"},
	SemaThisInStatic:           {"ERR_ThisInStaticMeth", "'this' is not valid in a static member"},
	SemaVoidValue:              {"ERR_VoidError", "Expression has no value"},
	SemaConstNotConstant:       {"ERR_NotConstantExpression", "Constant initializer is not constant"},
	SemaConstantOverflow:       {"ERR_ConstOutOfRange", "Constant value overflows its type"},
	SemaDivideByZero:           {"ERR_IntDivByZero", "Division by constant zero"},
	SemaLiteralTooLarge:        {"ERR_IntOverflow", "Integral constant is too large"},
	SemaAbstractCreation:       {"ERR_NoNewAbstract", "Cannot create an instance of the type"},
	IOLoadFileError:            {"ERR_FileNotFound", "Cannot load source file"},
}

// ID returns the stable identifier, for example "SEM3005".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Key returns the message key used by tooling to match diagnostics.
func (c Code) Key() string {
	if info, ok := codeTable[c]; ok {
		return info.key
	}
	return codeTable[UnknownCode].key
}

func (c Code) Title() string {
	if info, ok := codeTable[c]; ok {
		return info.title
	}
	return codeTable[UnknownCode].title
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
