// Package mmsdm discovers and retrieves tables published on AEMO's MMSDM
// Monthly Data Archive. The archive publishes one zip per (period, data
// directory, table); this package scrapes the directory listing pages to
// find what exists and streams individual archives to disk.
package mmsdm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mmsmonthly/lib/periods"
	"mmsmonthly/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
)

// DefaultArchiveUrl is the wholesale electricity data archive root.
const DefaultArchiveUrl = "https://www.nemweb.com.au/Data_Archive/Wholesale_Electricity/MMSDM/"

// DataDirectory selects a sub-collection within a period's publication.
type DataDirectory string

const (
	// DirData is the default/primary collection.
	DirData DataDirectory = "DATA"
	// DirPredispatchAllData holds full pre-dispatch detail.
	DirPredispatchAllData DataDirectory = "PREDISP_ALL_DATA"
	// DirP5minAllData holds full five-minute pre-dispatch detail.
	DirP5minAllData DataDirectory = "P5MIN_ALL_DATA"
)

// DataDirectories lists every valid directory, for validation and help text.
var DataDirectories = []DataDirectory{DirData, DirPredispatchAllData, DirP5minAllData}

func ParseDataDirectory(s string) (DataDirectory, error) {
	for _, dir := range DataDirectories {
		if string(dir) == s {
			return dir, nil
		}
	}
	return "", fmt.Errorf("unknown data directory %q, expected one of %v", s, DataDirectories)
}

type Client struct {
	baseUrl string
	clock   clockwork.Clock
	http    *resty.Client
}

type ClientOptions struct {
	// BaseUrl overrides DefaultArchiveUrl, e.g. for a test server.
	BaseUrl string
	// Clock bounds the valid period range; defaults to the real clock.
	Clock clockwork.Clock
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultArchiveUrl
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	// NEMWEB rejects requests with default/empty user agents
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")

	restyutil.InstrumentClient(client, tracer, instrumentOutput)

	return &Client{
		baseUrl: baseUrl,
		clock:   clock,
		http:    client,
	}
}

// AvailablePeriods reports the years and months the archive publishes data
// for. Computed from the archive's epoch and the current date; no request
// is made.
func (c *Client) AvailablePeriods() map[int][]int {
	return periods.Available(c.clock)
}

func (c *Client) indexUrl(p periods.Period, dir DataDirectory) string {
	return fmt.Sprintf(
		"%s%04d/MMSDM_%04d_%02d/MMSDM_Historical_Data_SQLLoader/%s/",
		c.baseUrl, p.Year, p.Year, p.Month, dir,
	)
}

func (c *Client) archiveUrl(p periods.Period, dir DataDirectory, table string) string {
	return c.indexUrl(p, dir) + ArchiveStem(p, table) + ".zip"
}

// FetchIndex retrieves the raw HTML directory listing for one (period, data
// directory). The period is validated against the catalog before any
// request goes out. No retry here; retry policy belongs to the caller.
func (c *Client) FetchIndex(ctx context.Context, p periods.Period, dir DataDirectory) (string, error) {
	if !periods.Contains(c.clock, p) {
		return "", fmt.Errorf("%w: the archive has no period %s", ErrNotFound, p)
	}

	// listing pages are small; archive downloads deliberately carry no
	// deadline beyond the caller's ctx
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()

	url := c.indexUrl(p, dir)
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("referer", c.baseUrl).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrTransport, url, err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: no %s listing for %s at %s", ErrNotFound, dir, p, url)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("%w: GET %s: %s", ErrTransport, url, res.Status())
	}
	return res.String(), nil
}

// TableSizes fetches and parses a listing page, returning the tables
// published for (p, dir) and their archive sizes in bytes.
func (c *Client) TableSizes(ctx context.Context, p periods.Period, dir DataDirectory) ([]TableEntry, error) {
	ctx, span := tracer.Start(ctx, "client:TableSizes")
	defer span.End()

	html, err := c.FetchIndex(ctx, p, dir)
	if err != nil {
		return nil, err
	}
	entries, err := ParseIndex(html)
	if err != nil {
		return nil, fmt.Errorf("%s listing for %s: %w", dir, p, err)
	}
	return entries, nil
}

// AvailableTables is TableSizes reduced to the sorted table names.
func (c *Client) AvailableTables(ctx context.Context, p periods.Period, dir DataDirectory) ([]string, error) {
	entries, err := c.TableSizes(ctx, p, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Table
	}
	return names, nil
}
