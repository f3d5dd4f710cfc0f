package syntax

// Kind identifies a syntax node. The child layout of each kind is fixed;
// optional slots hold NoNode so positional accessors stay valid.
type Kind uint8

const (
	KindInvalid Kind = iota

	// declarations
	KindCompilationUnit    // members...
	KindUsingDirective     // [name]
	KindNamespaceDecl      // Text=dotted name; members...
	KindClassDecl          // Text=name; [typeParams|0, baseList|0, members...]
	KindStructDecl         // same as class
	KindInterfaceDecl      // same as class
	KindBaseList           // types...
	KindFieldDecl          // [type, declarators...]
	KindVariableDeclarator // Text=name; [init|0]
	KindPropertyDecl       // Text=name; [type, accessorList|0, arrowBody|0]
	KindIndexerDecl        // [type, paramList, accessorList|0, arrowBody|0]
	KindAccessorList       // accessors...
	KindAccessorDecl       // Text=get|set; [body|0]
	KindMethodDecl         // Text=name; [returnType, typeParams|0, paramList, constraints|0, body|0]
	KindConstructorDecl    // Text=name; [paramList, body|0]
	KindOperatorDecl       // Text=operator token; Op; [returnType, paramList, body|0]
	KindConversionDecl     // Flags implicit|explicit; [targetType, paramList, body|0]
	KindParameterList      // params...
	KindParameter          // Text=name; [type|0]
	KindTypeParameterList  // typeParams...
	KindTypeParameter      // Text=name
	KindConstraintList     // clauses...
	KindConstraintClause   // Text=type parameter; constraints...
	KindClassConstraint    // `class`
	KindStructConstraint   // `struct`
	KindArrowBody          // [expr]

	// statements
	KindBlock      // statements...
	KindLocalDecl  // [type, declarators...]
	KindReturnStmt // [expr|0]
	KindExprStmt   // [expr]
	KindIfStmt     // [cond, then, else|0]

	// types
	KindPredefinedType // Op=keyword
	KindVarType        // implicitly typed local
	KindQualifiedName  // [left, right]

	// expressions
	KindIdentifierName   // Text=name
	KindGenericName      // Text=name; [typeArgs]
	KindTypeArgumentList // types...
	KindLiteral          // Op=literal token kind; Text=raw text
	KindThis
	KindBase
	KindMemberAccess   // [expr, name]
	KindInvocation     // [expr, argList]
	KindElementAccess  // [expr, argList]
	KindArgumentList   // args...
	KindObjectCreation // [type, argList]
	KindCast           // [type, expr]
	KindParenthesized  // [expr]
	KindPrefixUnary    // Op; [operand]
	KindPostfixUnary   // Op; [operand]
	KindBinary         // Op; [left, right]
	KindConditional    // [cond, whenTrue, whenFalse]
	KindAssignment     // [target, value]
	KindLambda         // [paramList, body]
	KindMissing        // placeholder produced by error recovery
)

var kindNames = [...]string{
	KindInvalid:            "Invalid",
	KindCompilationUnit:    "CompilationUnit",
	KindUsingDirective:     "UsingDirective",
	KindNamespaceDecl:      "NamespaceDeclaration",
	KindClassDecl:          "ClassDeclaration",
	KindStructDecl:         "StructDeclaration",
	KindInterfaceDecl:      "InterfaceDeclaration",
	KindBaseList:           "BaseList",
	KindFieldDecl:          "FieldDeclaration",
	KindVariableDeclarator: "VariableDeclarator",
	KindPropertyDecl:       "PropertyDeclaration",
	KindIndexerDecl:        "IndexerDeclaration",
	KindAccessorList:       "AccessorList",
	KindAccessorDecl:       "AccessorDeclaration",
	KindMethodDecl:         "MethodDeclaration",
	KindConstructorDecl:    "ConstructorDeclaration",
	KindOperatorDecl:       "OperatorDeclaration",
	KindConversionDecl:     "ConversionOperatorDeclaration",
	KindParameterList:      "ParameterList",
	KindParameter:          "Parameter",
	KindTypeParameterList:  "TypeParameterList",
	KindTypeParameter:      "TypeParameter",
	KindConstraintList:     "ConstraintList",
	KindConstraintClause:   "TypeParameterConstraintClause",
	KindClassConstraint:    "ClassConstraint",
	KindStructConstraint:   "StructConstraint",
	KindArrowBody:          "ArrowExpressionClause",
	KindBlock:              "Block",
	KindLocalDecl:          "LocalDeclarationStatement",
	KindReturnStmt:         "ReturnStatement",
	KindExprStmt:           "ExpressionStatement",
	KindIfStmt:             "IfStatement",
	KindPredefinedType:     "PredefinedType",
	KindVarType:            "VarType",
	KindQualifiedName:      "QualifiedName",
	KindIdentifierName:     "IdentifierName",
	KindGenericName:        "GenericName",
	KindTypeArgumentList:   "TypeArgumentList",
	KindLiteral:            "LiteralExpression",
	KindThis:               "ThisExpression",
	KindBase:               "BaseExpression",
	KindMemberAccess:       "MemberAccessExpression",
	KindInvocation:         "InvocationExpression",
	KindElementAccess:      "ElementAccessExpression",
	KindArgumentList:       "ArgumentList",
	KindObjectCreation:     "ObjectCreationExpression",
	KindCast:               "CastExpression",
	KindParenthesized:      "ParenthesizedExpression",
	KindPrefixUnary:        "PrefixUnaryExpression",
	KindPostfixUnary:       "PostfixUnaryExpression",
	KindBinary:             "BinaryExpression",
	KindConditional:        "ConditionalExpression",
	KindAssignment:         "AssignmentExpression",
	KindLambda:             "LambdaExpression",
	KindMissing:            "Missing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsExpression reports whether nodes of kind k produce a value.
// Names count: a name in expression position is an expression.
func (k Kind) IsExpression() bool {
	switch k {
	case KindIdentifierName, KindGenericName, KindLiteral, KindThis, KindBase,
		KindMemberAccess, KindInvocation, KindElementAccess, KindObjectCreation,
		KindCast, KindParenthesized, KindPrefixUnary, KindPostfixUnary, KindBinary,
		KindConditional, KindAssignment, KindLambda, KindMissing:
		return true
	}
	return false
}

// IsTypeDecl reports class, struct and interface declarations.
func (k Kind) IsTypeDecl() bool {
	return k == KindClassDecl || k == KindStructDecl || k == KindInterfaceDecl
}

// IsFunctionLike reports declarations that own a parameter list and a body.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case KindMethodDecl, KindConstructorDecl, KindOperatorDecl, KindConversionDecl, KindIndexerDecl:
		return true
	}
	return false
}
