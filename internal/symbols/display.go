package symbols

import (
	"strings"

	"semcore/internal/types"
)

// Display renders a symbol the way test expectations spell it, for example
// "System.Int32 C.M(System.Int32 i)".
func (t *Table) Display(id SymbolID) string {
	s := t.Get(id)
	if s == nil {
		return "<none>"
	}
	switch s.Kind {
	case KindNamespace:
		if id == t.Global {
			return "<global namespace>"
		}
		return t.qualified(id)
	case KindNamedType:
		return t.qualified(id)
	case KindTypeParameter:
		return s.Name
	case KindErrorType:
		return "?"
	case KindField:
		return t.typeName(s.Type) + " " + t.qualified(id)
	case KindParameter, KindLocal:
		return t.typeName(s.Type) + " " + s.Name
	case KindMethod:
		return t.displayMethod(id, s)
	case KindProperty:
		return t.displayProperty(id, s)
	case KindAccessor:
		suffix := ".get"
		if s.Accessor.IsSetter {
			suffix = ".set"
		}
		return t.typeName(s.Type) + " " + t.propertyHead(s.Accessor.Property) + suffix
	}
	return s.Name
}

func (t *Table) typeName(id SymbolID) string {
	if !id.IsValid() {
		return "var"
	}
	if t.SpecialType(id) == types.Void {
		return "void"
	}
	return t.Display(id)
}

// qualified returns the dotted name through namespaces and types.
func (t *Table) qualified(id SymbolID) string {
	var parts []string
	for cur := id; cur.IsValid() && cur != t.Global; cur = t.containerOf(cur) {
		parts = append(parts, t.Get(cur).Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

func (t *Table) paramList(params []SymbolID) string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, t.Display(p))
	}
	return strings.Join(out, ", ")
}

func (t *Table) displayMethod(id SymbolID, s *Symbol) string {
	if s.Method.Kind == MethodAnonymous {
		return "lambda expression"
	}
	var sb strings.Builder
	if s.Method.Kind != MethodConstructor {
		sb.WriteString(t.typeName(s.Type))
		sb.WriteByte(' ')
	}
	sb.WriteString(t.qualified(s.Container))
	sb.WriteByte('.')
	if s.Method.Kind == MethodConstructor {
		sb.WriteString(".ctor")
	} else {
		sb.WriteString(s.Name)
	}
	if len(s.Method.TypeParams) > 0 {
		names := make([]string, 0, len(s.Method.TypeParams))
		for _, tp := range s.Method.TypeParams {
			names = append(names, t.Get(tp).Name)
		}
		sb.WriteString("<" + strings.Join(names, ", ") + ">")
	}
	sb.WriteString("(" + t.paramList(s.Method.Params) + ")")
	return sb.String()
}

func (t *Table) propertyHead(id SymbolID) string {
	s := t.Get(id)
	if s.Property.IsIndexer {
		return t.qualified(s.Container) + ".this[" + t.paramList(s.Property.Params) + "]"
	}
	return t.qualified(id)
}

func (t *Table) displayProperty(id SymbolID, s *Symbol) string {
	var acc []string
	if s.Property.Getter.IsValid() {
		acc = append(acc, "get;")
	}
	if s.Property.Setter.IsValid() {
		acc = append(acc, "set;")
	}
	return t.typeName(s.Type) + " " + t.propertyHead(id) + " { " + strings.Join(acc, " ") + " }"
}
