package api

import "strings"

type fieldCheck struct {
	name    string
	missing bool
}

// missingFields returns a comma-joined list of every absent field so a
// validation error names all problems at once, not just the first.
func missingFields(checks []fieldCheck) string {
	var missing []string
	for _, c := range checks {
		if c.missing {
			missing = append(missing, c.name)
		}
	}
	return strings.Join(missing, ", ")
}
