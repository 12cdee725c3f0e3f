// Package requirement implements the domain layer for checklist requirements.
//
// This package contains only pure Go code with standard library imports. It has no
// knowledge of manifests, storage engines or transports.
//
// # Core Types
//
// Requirement is the contract every checklist item satisfies: identity, display text,
// severity, dependencies, an optional action label and three side-effect-free
// predicates (applicable, completed, resolvable). Predicates never fail; any error
// while evaluating them is reported through an ErrorHandler and treated as false.
//
// Configurable is the optional configuration step. A requirement that exposes a Form
// accepts submitted Values through Configure, which validates the whole submission and
// then commits it atomically through a Recorder, or rejects it with a *ValidationError
// without touching stored state.
//
// Definition is the data-driven Requirement built with NewBuilder. Its predicates are
// Predicate values evaluated against an Environment.
//
// # Registry
//
// Registry holds requirements and groups and answers the structural queries:
//   - AllApplicable: applicable requirements in dependency order, ties broken by id
//   - NextUnresolved: first applicable requirement that is not completed
//   - IsFullyResolved: every applicable requirement is completed
//   - Evaluate: a Report classifying each requirement as completed, actionable,
//     waiting or blocked
//
// RegistryProvider is the read interface that Registry implements.
package requirement
