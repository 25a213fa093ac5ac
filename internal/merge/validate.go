package merge

import (
	"github.com/dshills/keymerge/internal/collide"
	"github.com/dshills/keymerge/internal/keybind"
	"github.com/dshills/keymerge/internal/tables"
)

// ValidateConfiguration runs detection over a batch and returns only the
// pass/fail view, for gate-style use such as CI. Nothing is resolved or
// mutated beyond key normalization.
func ValidateConfiguration(batch []*keybind.Keybind) ValidationResult {
	return ValidateConfigurationWith(batch, nil)
}

// ValidateConfigurationWith is ValidateConfiguration with explicit
// lookup tables.
func ValidateConfigurationWith(batch []*keybind.Keybind, t *tables.Tables) ValidationResult {
	detector := collide.NewDetector(t)
	return validationFromConflicts(detector.DetectAll(batch))
}

// validationFromConflicts partitions conflicts by severity. Valid is
// true iff there are no errors.
func validationFromConflicts(conflicts []collide.Conflict) ValidationResult {
	vr := ValidationResult{
		Errors:   make([]collide.Conflict, 0),
		Warnings: make([]collide.Conflict, 0),
		Info:     make([]collide.Conflict, 0),
	}
	for _, c := range conflicts {
		switch c.Severity {
		case collide.SeverityError:
			vr.Errors = append(vr.Errors, c)
		case collide.SeverityWarning:
			vr.Warnings = append(vr.Warnings, c)
		default:
			vr.Info = append(vr.Info, c)
		}
	}
	vr.Valid = len(vr.Errors) == 0
	return vr
}
