// Package pipeline defines the finite set of valid stages for each pipeline
// variant and the suffix convention that distinguishes the regional variant's
// stage names from the default pipeline's.
//
// The package has two responsibilities:
//   - Stage: the semantic stage machine (transition graph, terminality) that
//     the parcel aggregate delegates to.
//   - The registry functions (StagesFor, IsValidStage, NameFor, StageForName,
//     Counterpart): pure lookups between the two isomorphic stage namespaces.
//
// Because a Stage is a tagged value rather than a concatenated string, a
// parcel can never carry a stage name belonging to another pipeline's
// namespace; the suffix only exists at the naming boundary.
//
// The package holds no mutable state and is safe to call concurrently from
// any number of callers.
package pipeline
