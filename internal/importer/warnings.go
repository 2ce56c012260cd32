package importer

import (
	"fmt"
	"slices"
)

// logWarnings writes a file's collected decode warnings to the run log,
// deduplicated and sorted. Warnings never abort processing; they exist for
// the operator reading the log after the run.
func (im *Importer) logWarnings(path string, warnings []string) {
	slices.Sort(warnings)
	warnings = slices.Compact(warnings)

	if len(warnings) == 0 {
		return
	}

	fmt.Fprintf(im.runLog, "File %s produced %d warnings:\n", path, len(warnings))
	im.logger.Warn("file produced decode warnings, all logged",
		"path", path, "count", len(warnings))

	for _, w := range warnings {
		fmt.Fprintf(im.runLog, "Warning: %s\n", w)
	}
}
