package mmsdm

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mmsmonthly/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// TableEntry is one archive discovered on a listing page.
type TableEntry struct {
	// Table is the canonical (uppercase) table name.
	Table string
	// Size is the archive size in bytes, converted from the displayed
	// "12.3 MB" style figure.
	Size int64
}

// the size rendered next to each archive link, e.g. "523 KB" or "12.3 MB"
var displayedSizeRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(KB|MB|GB)`)

var sizeMultipliers = map[string]float64{
	"KB": 1024,
	"MB": 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
}

// ParseIndex turns a listing page into its table entries. Links that don't
// follow the archive filename convention (parent-directory links, column
// headers, subdirectories) are skipped. A page with zero archive links is a
// hard ErrParse: either the caller fed it something that isn't a listing
// page, or the site's markup changed and this scraper needs updating.
//
// Duplicate table names within one page are a data-source anomaly; the
// last row seen wins.
func ParseIndex(htmlText string) ([]TableEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var entries []TableEntry
	position := map[string]int{}

	for _, anchor := range htmlutil.Anchors(doc.Find("a")) {
		table, ok := TableFromFilename(path.Base(anchor.Href))
		if !ok {
			continue
		}

		entry := TableEntry{
			Table: table,
			Size:  parseDisplayedSize(anchor.PrecedingText),
		}
		if i, seen := position[table]; seen {
			entries[i] = entry
			continue
		}
		position[table] = len(entries)
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no archive links found", ErrParse)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Table < entries[j].Table
	})
	return entries, nil
}

// parseDisplayedSize converts the last size figure in text to bytes at the
// 1024 scale, truncating toward zero. Displayed sizes are already rounded
// upstream, so the truncation direction is a policy choice rather than a
// precision loss; it just has to be consistent. Returns 0 when no size
// figure is present.
func parseDisplayedSize(text string) int64 {
	matches := displayedSizeRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0
	}
	// a row reads "<timestamp> <size> <link>", so the size is the last
	// figure before the anchor
	m := matches[len(matches)-1]

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return int64(value * sizeMultipliers[strings.ToUpper(m[2])])
}
