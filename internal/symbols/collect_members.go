package symbols

import (
	"slices"

	"semcore/internal/diag"
	"semcore/internal/syntax"
	"semcore/internal/token"
	"semcore/internal/types"
)

func (c *collector) declareMembers(typeRef syntax.Ref) {
	owner := c.t.decls[typeRef]
	isInterface := c.t.Get(owner).Named.Kind == TypeInterface
	def := AccessPrivate
	if isInterface {
		def = AccessPublic
	}
	for _, child := range typeRef.Tree.ChildrenFrom(typeRef.Node, 2) {
		ref := syntax.Ref{Tree: typeRef.Tree, Node: child}
		node := ref.Tree.Node(child)
		access := accessOf(node.Flags, def)
		switch node.Kind {
		case syntax.KindFieldDecl:
			c.declareFields(ref, owner, access)
		case syntax.KindPropertyDecl, syntax.KindIndexerDecl:
			c.declareProperty(ref, owner, access)
		case syntax.KindMethodDecl, syntax.KindConstructorDecl, syntax.KindOperatorDecl, syntax.KindConversionDecl:
			c.declareMethod(ref, owner, access)
		}
	}
}

func (c *collector) declareFields(ref syntax.Ref, owner SymbolID, access Access) {
	node := ref.Tree.Node(ref.Node)
	typ := c.t.ResolveType(ref.Child(0), c.rep)
	for _, d := range ref.Tree.ChildrenFrom(ref.Node, 1) {
		dref := syntax.Ref{Tree: ref.Tree, Node: d}
		init := dref.Child(0)
		id := c.t.add(&Symbol{
			Kind:      KindField,
			Name:      dref.Text(),
			Container: owner,
			Type:      typ,
			Access:    access,
			Flags:     flagsOf(node.Flags),
			Decl:      dref,
			Span:      dref.Span(),
			Field:     &FieldInfo{Initializer: init},
		})
		c.checkDuplicate(owner, id)
		if node.Flags.Has(syntax.FlagConst) && !init.IsValid() {
			c.report(diag.SemaConstNotConstant, dref, "a const field requires a value to be provided")
		}
		if init.IsValid() {
			c.declareRoot(init, id)
		}
	}
}

func (c *collector) declareProperty(ref syntax.Ref, owner SymbolID, access Access) {
	node := ref.Tree.Node(ref.Node)
	indexer := node.Kind == syntax.KindIndexerDecl
	typ := c.t.ResolveType(ref.Child(0), c.rep)
	info := &PropertyInfo{IsIndexer: indexer}
	accessorsSlot, bodySlot := 1, 2
	if indexer {
		accessorsSlot, bodySlot = 2, 3
	}
	id := c.t.add(&Symbol{
		Kind:      KindProperty,
		Name:      node.Text,
		Container: owner,
		Type:      typ,
		Access:    access,
		Flags:     flagsOf(node.Flags),
		Decl:      ref,
		Span:      ref.Span(),
		Property:  info,
	})
	c.checkDuplicate(owner, id)
	if indexer {
		info.Params = c.declareParams(ref.Child(1), id)
	}

	if body := ref.Child(bodySlot); body.IsValid() {
		info.Body = body
		info.Getter = c.declareAccessor(body, id, false, body, flagsOf(node.Flags)|FlagExpressionBodied|FlagSynthesized)
		return
	}
	list := ref.Child(accessorsSlot)
	if !list.IsValid() {
		return
	}
	for _, a := range ref.Tree.Children(list.Node) {
		aref := syntax.Ref{Tree: ref.Tree, Node: a}
		setter := aref.Text() == "set"
		if (setter && info.Setter.IsValid()) || (!setter && info.Getter.IsValid()) {
			c.report(diag.SemaDuplicateMember, aref, "duplicate '"+aref.Text()+"' accessor")
			continue
		}
		acc := c.declareAccessor(aref, id, setter, aref.Child(0), flagsOf(node.Flags))
		if setter {
			info.Setter = acc
		} else {
			info.Getter = acc
		}
	}
}

// declareAccessor creates a get or set accessor. Indexer accessors get their
// own copies of the indexer parameters; setters also get `value`.
func (c *collector) declareAccessor(decl syntax.Ref, property SymbolID, setter bool, body syntax.Ref, flags Flags) SymbolID {
	prop := c.t.Get(property)
	name, typ := "get_"+prop.Name, prop.Type
	if setter {
		name, typ = "set_"+prop.Name, c.t.special[types.Void]
	}
	if prop.Property.IsIndexer {
		name = name[:4] + "Item"
	}
	info := &AccessorInfo{Property: property, IsSetter: setter, Body: body}
	id := c.t.add(&Symbol{
		Kind:      KindAccessor,
		Name:      name,
		Container: property,
		Type:      typ,
		Access:    prop.Access,
		Flags:     flags,
		Decl:      decl,
		Span:      decl.Span(),
		Accessor:  info,
	})
	for i, p := range c.t.Get(property).Property.Params {
		ps := c.t.Get(p)
		info.Params = append(info.Params, c.t.add(&Symbol{
			Kind:      KindParameter,
			Name:      ps.Name,
			Container: id,
			Type:      ps.Type,
			Decl:      ps.Decl,
			Span:      ps.Span,
			Ordinal:   i,
		}))
	}
	if setter {
		info.Params = append(info.Params, c.t.add(&Symbol{
			Kind:      KindParameter,
			Name:      "value",
			Container: id,
			Type:      c.t.Get(property).Type,
			Flags:     FlagSynthesized,
			Span:      decl.Span(),
			Ordinal:   len(info.Params),
		}))
	}
	if body.IsValid() {
		c.declareRoot(body, id)
	}
	return id
}

func (c *collector) declareParams(list syntax.Ref, owner SymbolID) []SymbolID {
	if !list.IsValid() {
		return nil
	}
	var out []SymbolID
	for i, p := range list.Tree.Children(list.Node) {
		pref := syntax.Ref{Tree: list.Tree, Node: p}
		typ := NoSymbolID
		var flags Flags
		if tref := pref.Child(0); tref.IsValid() {
			typ = c.t.ResolveType(tref, c.rep)
		} else {
			flags |= FlagImplicitlyTyped
		}
		for _, prev := range out {
			if c.t.Get(prev).Name == pref.Text() {
				c.report(diag.SemaDuplicateMember, pref, "the parameter name '"+pref.Text()+"' is a duplicate")
			}
		}
		out = append(out, c.t.add(&Symbol{
			Kind:      KindParameter,
			Name:      pref.Text(),
			Container: owner,
			Type:      typ,
			Flags:     flags,
			Decl:      pref,
			Span:      pref.Span(),
			Ordinal:   i,
		}))
	}
	return out
}

func (c *collector) declareMethod(ref syntax.Ref, owner SymbolID, access Access) {
	node := ref.Tree.Node(ref.Node)
	info := &MethodInfo{}
	sym := &Symbol{
		Kind:      KindMethod,
		Name:      node.Text,
		Container: owner,
		Access:    access,
		Flags:     flagsOf(node.Flags),
		Decl:      ref,
		Span:      ref.Span(),
		Method:    info,
	}
	var retSlot, paramSlot, bodySlot int
	switch node.Kind {
	case syntax.KindMethodDecl:
		retSlot, paramSlot, bodySlot = 0, 2, 4
	case syntax.KindConstructorDecl:
		info.Kind = MethodConstructor
		sym.Name = ".ctor"
		retSlot, paramSlot, bodySlot = -1, 0, 1
	case syntax.KindOperatorDecl:
		info.Kind = MethodUserDefinedOperator
		retSlot, paramSlot, bodySlot = 0, 1, 2
		sym.Name = operatorName(node.Op, len(ref.Tree.Children(ref.Child(1).Node)))
		if sym.Name == "" {
			c.report(diag.SemaOperatorMismatch, ref, "overloadable operator '"+node.Text+"' has the wrong number of parameters")
			sym.Name = "op_" + node.Text
		}
	case syntax.KindConversionDecl:
		info.Kind = MethodConversion
		retSlot, paramSlot, bodySlot = 0, 1, 2
		sym.Name = types.OpImplicit
		if node.Flags.Has(syntax.FlagExplicit) {
			sym.Name = types.OpExplicit
		}
	}
	if (info.Kind == MethodUserDefinedOperator || info.Kind == MethodConversion) && !sym.Flags.Has(FlagStatic) {
		c.report(diag.SynModifierNotValid, ref, "user-defined operator '"+sym.Name+"' must be declared static")
	}
	id := c.t.add(sym)

	if node.Kind == syntax.KindMethodDecl {
		info.TypeParams = c.declareTypeParams(ref.Child(1), id)
		c.bindConstraints(ref.Child(3), info.TypeParams)
	}
	ret := c.t.special[types.Void]
	if retSlot >= 0 {
		ret = c.t.ResolveType(ref.Child(retSlot), c.rep)
	}
	c.t.Get(id).Type = ret
	info.Params = c.declareParams(ref.Child(paramSlot), id)
	c.checkDuplicate(owner, id)

	body := ref.Child(bodySlot)
	if body.IsValid() {
		info.Body = body
		c.declareRoot(body, id)
		if sym.Flags.Has(FlagExtern) {
			c.report(diag.SynModifierNotValid, ref, "'"+node.Text+"' cannot be extern and declare a body")
		}
	} else if !sym.Flags.Has(FlagExtern) && c.t.Get(owner).Named.Kind != TypeInterface {
		c.report(diag.SynExpectBody, ref, "'"+node.Text+"' must declare a body because it is not marked extern")
	}
}

func operatorName(op token.Kind, params int) string {
	switch params {
	case 1:
		if n, ok := types.UnaryOperatorName(op); ok {
			return n
		}
	case 2:
		if n, ok := types.BinaryOperatorName(op); ok {
			return n
		}
	}
	return ""
}

func (c *collector) declareTypeParams(list syntax.Ref, method SymbolID) []SymbolID {
	if !list.IsValid() {
		return nil
	}
	var out []SymbolID
	for i, tp := range list.Tree.Children(list.Node) {
		tref := syntax.Ref{Tree: list.Tree, Node: tp}
		out = append(out, c.t.add(&Symbol{
			Kind:      KindTypeParameter,
			Name:      tref.Text(),
			Container: method,
			Decl:      tref,
			Span:      tref.Span(),
			Ordinal:   i,
			TypeParam: &TypeParamInfo{},
		}))
	}
	return out
}

func (c *collector) bindConstraints(list syntax.Ref, params []SymbolID) {
	if !list.IsValid() {
		return
	}
	for _, clause := range list.Tree.Children(list.Node) {
		cref := syntax.Ref{Tree: list.Tree, Node: clause}
		idx := slices.IndexFunc(params, func(p SymbolID) bool { return c.t.Get(p).Name == cref.Text() })
		if idx < 0 {
			c.report(diag.SemaNameNotFound, cref, "'"+cref.Text()+"' does not define type parameter '"+cref.Text()+"'")
			continue
		}
		info := c.t.Get(params[idx]).TypeParam
		for _, con := range list.Tree.Children(clause) {
			kref := syntax.Ref{Tree: list.Tree, Node: con}
			switch kref.Kind() {
			case syntax.KindClassConstraint:
				info.ClassConstraint = true
			case syntax.KindStructConstraint:
				info.StructConstraint = true
			default:
				if typ := c.t.ResolveType(kref, c.rep); typ != c.t.errorType {
					info.Constraints = append(info.Constraints, typ)
				}
			}
		}
	}
}

// checkDuplicate reports id when its container already has a member of the
// same name that it cannot overload.
func (c *collector) checkDuplicate(container, id SymbolID) {
	sym := c.t.Get(id)
	for _, other := range c.t.LookupMember(container, sym.Name) {
		if other == id {
			continue
		}
		o := c.t.Get(other)
		if o.Kind == KindMethod && sym.Kind == KindMethod && !c.sameSignature(o, sym) {
			continue
		}
		if o.Kind == KindProperty && sym.Kind == KindProperty && o.Property.IsIndexer && sym.Property.IsIndexer &&
			!c.sameParams(o.Property.Params, sym.Property.Params) {
			continue
		}
		if o.Kind == KindMethod && o.Flags.Has(FlagSynthesized) {
			continue
		}
		c.report(diag.SemaDuplicateMember, sym.Decl, "type '"+c.t.Display(container)+"' already defines a member called '"+sym.Name+"'")
		return
	}
}

func (c *collector) sameSignature(a, b *Symbol) bool {
	if len(a.Method.TypeParams) != len(b.Method.TypeParams) {
		return false
	}
	if (a.Method.Kind == MethodConversion || b.Method.Kind == MethodConversion) && a.Type != b.Type {
		return false
	}
	return c.sameParams(a.Method.Params, b.Method.Params)
}

func (c *collector) sameParams(a, b []SymbolID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ta, tb := c.t.Get(a[i]), c.t.Get(b[i])
		// type parameters of different methods match by position
		if ta.Type != tb.Type && !c.sameTypeParam(ta.Type, tb.Type) {
			return false
		}
	}
	return true
}

func (c *collector) sameTypeParam(a, b SymbolID) bool {
	sa, sb := c.t.Get(a), c.t.Get(b)
	return sa != nil && sb != nil && sa.Kind == KindTypeParameter && sb.Kind == KindTypeParameter && sa.Ordinal == sb.Ordinal
}
