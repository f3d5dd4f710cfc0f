// Package overload selects the best member of a candidate set for an
// argument list.
package overload

// Reason explains why a reference did not resolve to exactly one symbol.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonOverloadResolutionFailure
	ReasonAmbiguous
	ReasonInaccessible
	ReasonWrongArity
	ReasonStaticInstanceMismatch
	ReasonNotAValue
	ReasonNotInvocable
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonOverloadResolutionFailure:
		return "OverloadResolutionFailure"
	case ReasonAmbiguous:
		return "Ambiguous"
	case ReasonInaccessible:
		return "Inaccessible"
	case ReasonWrongArity:
		return "WrongArity"
	case ReasonStaticInstanceMismatch:
		return "StaticInstanceMismatch"
	case ReasonNotAValue:
		return "NotAValue"
	case ReasonNotInvocable:
		return "NotInvocable"
	}
	return "Reason(?)"
}

// stage records how far a candidate got before it was rejected. Failure
// reasons other than OverloadResolutionFailure are only reported when
// every candidate stopped at the same early stage.
type stage uint8

const (
	stageInaccessible stage = iota
	stageStaticMismatch
	stageTypeArity
	stageArity
	stageInference
	stageConstraint
	stageConversion
	stageApplicable
)

// Detail names the furthest check any candidate passed when resolution
// fails, so callers can word their diagnostic.
type Detail uint8

const (
	DetailNone Detail = iota
	DetailArity        // no candidate takes that many arguments
	DetailInference    // type arguments could not be inferred
	DetailConstraint   // inferred or explicit type arguments violate a constraint
	DetailConversion   // some argument does not convert
)

func furthest(cands []*candidate) Detail {
	var top stage
	for _, c := range cands {
		top = max(top, c.stage)
	}
	switch top {
	case stageInference:
		return DetailInference
	case stageConstraint:
		return DetailConstraint
	case stageConversion:
		return DetailConversion
	case stageApplicable:
		return DetailNone
	}
	return DetailArity
}
