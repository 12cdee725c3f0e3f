package requirement

import "errors"

// Registry errors
var (
	ErrNotFound          = errors.New("requirement not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrNilRequirement    = errors.New("requirement cannot be nil")
	ErrNilGroup          = errors.New("group cannot be nil")
	ErrUnknownGroup      = errors.New("unknown group")
	ErrGroupInUse        = errors.New("group is referenced by registered requirements")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCyclicDependency  = errors.New("cyclic dependency")
)

// Configuration errors
var (
	ErrValidation          = errors.New("validation failed")
	ErrNoConfigurationStep = errors.New("requirement has no configuration step")
)
