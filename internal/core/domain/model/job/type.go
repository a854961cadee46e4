package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type tells an Original work order apart from the offers derived from it.
type Type int

const (
	UnknownType Type = iota
	Original
	Copied
	Application
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType: "unknown",
		Original:    "original",
		Copied:      "copied",
		Application: "application",
	}
}

// TypeFromString parses the API/persistence name of a type.
func TypeFromString(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if t != UnknownType && name == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("job_type", fmt.Errorf("%q is not a valid job type", s))
}

func (t Type) Validate() error {
	if t != Original && t != Copied && t != Application {
		return errs.NewValueIsInvalidErrorWithCause("job_type", fmt.Errorf("%d is not a valid job type", t))
	}
	return nil
}

func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// IsOffer reports whether the type is derived from an Original.
func (t Type) IsOffer() bool {
	return t == Copied || t == Application
}

// OfferTypes lists the types that carry an original job id.
func OfferTypes() []Type {
	return []Type{Copied, Application}
}
