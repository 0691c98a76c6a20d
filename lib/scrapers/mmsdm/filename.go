package mmsdm

import (
	"fmt"
	"regexp"
	"strings"

	"mmsmonthly/lib/periods"
)

// Filename conventions of the MMSDM Historical Data Archive. Every archive
// is named PUBLIC_DVD_<TABLE>_<yyyymm>010000.zip, where the date-stamp
// repeats the period the archive belongs to. All name knowledge lives here
// so a change in the upstream convention only touches this file.

const archivePrefix = "PUBLIC_DVD_"

var archiveFilenameRegex = regexp.MustCompile(`(?i)^PUBLIC_DVD_([A-Z0-9_]+)_(\d{12})\.zip$`)

// ArchiveStem builds the archive filename (without extension) for a table in
// a period, e.g. PUBLIC_DVD_DISPATCHLOAD_202207010000.
func ArchiveStem(p periods.Period, table string) string {
	return fmt.Sprintf(
		"%s%s_%04d%02d010000",
		archivePrefix, strings.ToUpper(table), p.Year, p.Month,
	)
}

// TableFromFilename recovers the canonical table name from an archive
// filename: the publication prefix, trailing date-stamp and extension are
// stripped and the remainder is uppercased. Reports false for names that
// don't follow the archive convention (directories, navigation links).
func TableFromFilename(name string) (string, bool) {
	groups := archiveFilenameRegex.FindStringSubmatch(name)
	if groups == nil {
		return "", false
	}
	table := strings.TrimLeft(groups[1], "_")
	if table == "" {
		return "", false
	}
	return strings.ToUpper(table), true
}
