package catalog

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a set of modules.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog: %s", strings.Join(e.Problems, "; "))
}

// validateModules performs the semantic checks the JSON schema can't express.
// Returns a *ValidationError describing all problems found, or nil if valid.
func validateModules(modules []Module) error {
	var errs []string

	moduleIDs := make(map[string]bool, len(modules))
	for _, m := range modules {
		if m.ID == "" {
			errs = append(errs, fmt.Sprintf("module %q has an empty ID", m.Title))
			continue
		}
		if moduleIDs[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		moduleIDs[m.ID] = true

		if m.Hazard != "" && !m.Hazard.Valid() {
			errs = append(errs, fmt.Sprintf("module %q has unknown hazard %q", m.ID, m.Hazard))
		}

		for i, p := range m.Pages {
			if !p.Kind.Valid() {
				errs = append(errs, fmt.Sprintf("module %q page %d has unknown kind %q", m.ID, i+1, p.Kind))
			}
		}

		questionIDs := make(map[string]bool, len(m.Quiz))
		for _, q := range m.Quiz {
			if q.ID == "" {
				errs = append(errs, fmt.Sprintf("module %q has a question with an empty ID", m.ID))
				continue
			}
			if questionIDs[q.ID] {
				errs = append(errs, fmt.Sprintf("module %q has duplicate question ID %q", m.ID, q.ID))
			}
			questionIDs[q.ID] = true

			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("question %s/%s needs at least 2 options, has %d", m.ID, q.ID, len(q.Options)))
			}
			if !q.HasOption(q.CorrectAnswer) {
				errs = append(errs, fmt.Sprintf("question %s/%s: correct answer %q is not one of its options", m.ID, q.ID, q.CorrectAnswer))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
