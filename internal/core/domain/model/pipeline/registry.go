package pipeline

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// RegionalSuffix distinguishes the regional variant's stage names from the
// default pipeline's. Every regional stage name is the default name plus this
// suffix, so the two namespaces stay isomorphic by construction.
const RegionalSuffix = "-R"

// Variant identifies which of the two parallel pipelines owns a parcel.
// The registry is read-only after startup and safe for concurrent use.
type Variant int

const (
	// UnknownVariant represents an invalid or undefined pipeline.
	UnknownVariant Variant = iota

	// Default is the main fulfillment pipeline.
	Default

	// Regional is the regional pipeline; the same stage graph under
	// suffixed stage names.
	Regional
)

// getVariantStrings returns a map of Variant values to their names.
func getVariantStrings() map[Variant]string {
	return map[Variant]string{
		UnknownVariant: "Unknown",
		Default:        "Default",
		Regional:       "Regional",
	}
}

// Validate checks if the Variant is a registered pipeline.
func (v Variant) Validate() error {
	if v != Default && v != Regional {
		return errs.NewUnknownPipelineError(int(v))
	}
	return nil
}

// String returns the human-readable name of the variant.
func (v Variant) String() string {
	if s, ok := getVariantStrings()[v]; ok {
		return s
	}
	return "Unknown"
}

// VariantFromString parses a variant name, e.g. from a route parameter.
func VariantFromString(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "default":
		return Default, nil
	case "regional":
		return Regional, nil
	default:
		return UnknownVariant, errs.NewUnknownPipelineError(s)
	}
}

// StagesFor returns the ordered set of stage names for the variant, in the
// variant's own namespace. Fails with an unknown-pipeline error if the
// variant is not registered.
func StagesFor(v Variant) ([]string, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	stages := orderedStages()
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		name, err := NameFor(v, s)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// IsValidStage reports whether name belongs to the variant's stage namespace.
// A regional name never validates against the default pipeline and vice versa.
func IsValidStage(v Variant, name string) bool {
	_, err := StageForName(v, name)
	return err == nil
}

// NameFor returns the stage's name in the variant's namespace.
func NameFor(v Variant, s Stage) (string, error) {
	if err := v.Validate(); err != nil {
		return "", err
	}
	if err := s.Validate(); err != nil {
		return "", err
	}

	if v == Regional {
		return s.String() + RegionalSuffix, nil
	}
	return s.String(), nil
}

// StageForName resolves a stage name within the variant's namespace.
// Fails if the variant is unknown or the name is not a member of its stage set.
func StageForName(v Variant, name string) (Stage, error) {
	if err := v.Validate(); err != nil {
		return Unknown, err
	}

	base := name
	if v == Regional {
		if !strings.HasSuffix(name, RegionalSuffix) {
			return Unknown, errs.NewValueIsInvalidError("stage " + name + " is not in the regional namespace")
		}
		base = strings.TrimSuffix(name, RegionalSuffix)
	} else if strings.HasSuffix(name, RegionalSuffix) {
		return Unknown, errs.NewValueIsInvalidError("stage " + name + " is not in the default namespace")
	}

	for s, str := range getStageStrings() {
		if s != Unknown && str == base {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("stage " + name + " is not registered")
}

// Counterpart maps a stage name to its equivalent in the target variant's
// namespace by stripping or appending the regional suffix. The mapping
// round-trips: Counterpart(Counterpart(s, Regional), Default) == s.
func Counterpart(name string, target Variant) (string, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	source := Default
	if strings.HasSuffix(name, RegionalSuffix) {
		source = Regional
	}

	stage, err := StageForName(source, name)
	if err != nil {
		return "", err
	}

	return NameFor(target, stage)
}
