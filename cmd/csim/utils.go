package main

import (
	"github.com/ludo-technologies/csim/domain"
)

// resolveOutputFormat picks the output format from mutually exclusive flags
func resolveOutputFormat(json, yaml, csv bool) (domain.OutputFormat, error) {
	selected := 0
	format := domain.OutputFormatText

	if json {
		selected++
		format = domain.OutputFormatJSON
	}
	if yaml {
		selected++
		format = domain.OutputFormatYAML
	}
	if csv {
		selected++
		format = domain.OutputFormatCSV
	}

	if selected > 1 {
		return "", domain.NewInvalidInputError("only one of --json, --yaml, --csv may be given", nil)
	}

	return format, nil
}
