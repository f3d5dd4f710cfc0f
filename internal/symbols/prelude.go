package symbols

import "semcore/internal/types"

// seedPrelude declares the global and System namespaces, the special types
// and the predefined operators. It runs before any source declaration.
func (t *Table) seedPrelude() {
	t.Global = t.add(&Symbol{Kind: KindNamespace, Name: "", Scope: newScope()})
	t.System = t.add(&Symbol{Kind: KindNamespace, Name: "System", Container: t.Global, Scope: newScope()})
	t.errorType = t.add(&Symbol{Kind: KindErrorType, Name: "?", Flags: FlagSynthesized})

	for _, st := range types.All() {
		kind := TypeStruct
		if st == types.Object || st == types.String {
			kind = TypeClass
		}
		t.special[st] = t.add(&Symbol{
			Kind:      KindNamedType,
			Name:      st.MetadataName(),
			Container: t.System,
			Access:    AccessPublic,
			Flags:     FlagSynthesized,
			Scope:     newScope(),
			Named:     &TypeInfo{Kind: kind, Special: st},
		})
	}
	object := t.special[types.Object]
	for _, st := range types.All() {
		if st != types.Object {
			t.Get(t.special[st]).Named.Base = object
		}
	}

	for _, sig := range types.PredefinedOperators() {
		container := t.special[sig.Params[0]]
		if sig.Params[0] == types.Object && len(sig.Params) == 2 && sig.Params[1] == types.String {
			container = t.special[types.String]
		}
		m := t.add(&Symbol{
			Kind:      KindMethod,
			Name:      sig.Name,
			Container: container,
			Type:      t.special[sig.Result],
			Access:    AccessPublic,
			Flags:     FlagStatic | FlagSynthesized,
			Method:    &MethodInfo{Kind: MethodIntrinsic},
		})
		names := []string{"value"}
		if len(sig.Params) == 2 {
			names = []string{"left", "right"}
		}
		for i, p := range sig.Params {
			pid := t.add(&Symbol{
				Kind:      KindParameter,
				Name:      names[i],
				Container: m,
				Type:      t.special[p],
				Flags:     FlagSynthesized,
				Ordinal:   i,
			})
			t.Get(m).Method.Params = append(t.Get(m).Method.Params, pid)
		}
		t.intrinsics[sig.Name] = append(t.intrinsics[sig.Name], m)
	}
}
