// Package steps defines the stages of a render run and the order they depend on.
package steps

import (
	"fmt"
)

// Step names
const (
	StepMigrate  = "migrate"
	StepSettings = "resolve_settings"
	StepCompose  = "compose_markup"
	StepCompile  = "compile"
	StepPersist  = "persist"
)

// Category constants for grouping steps by phase
const (
	CategoryPrepare = "prepare"
	CategoryRender  = "render"
	CategoryOutput  = "output"
)

// StepDefinition defines metadata for a render step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepMigrate: {
		Name:     StepMigrate,
		Category: CategoryPrepare,
	},
	StepSettings: {
		Name:         StepSettings,
		Category:     CategoryPrepare,
		Dependencies: []string{StepMigrate},
	},
	StepCompose: {
		Name:         StepCompose,
		Category:     CategoryRender,
		Dependencies: []string{StepMigrate, StepSettings},
	},
	StepCompile: {
		Name:         StepCompile,
		Category:     CategoryRender,
		Dependencies: []string{StepCompose},
	},
	StepPersist: {
		Name:         StepPersist,
		Category:     CategoryOutput,
		Dependencies: []string{StepCompose},
		Optional:     []string{StepCompile},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every required dependency of stepName is in completed
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// Plan returns the ordered steps of a run. Compilation and persistence are
// included only when requested.
func Plan(compile, persist bool) []string {
	plan := []string{StepMigrate, StepSettings, StepCompose}
	if compile {
		plan = append(plan, StepCompile)
	}
	if persist {
		plan = append(plan, StepPersist)
	}
	return plan
}
