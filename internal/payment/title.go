package payment

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase returns s in English title case. Casers hold state, so one is made per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func humanize(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
