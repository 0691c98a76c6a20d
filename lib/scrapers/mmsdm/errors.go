package mmsdm

import "errors"

var (
	// ErrNotFound means the requested period, directory or table does not
	// exist upstream. Not retryable; usually data that hasn't been
	// published yet or a typo in the request.
	ErrNotFound = errors.New("not found on the monthly data archive")

	// ErrTransport covers network-level failures and unexpected HTTP
	// statuses. Callers may retry with backoff; this package never does.
	ErrTransport = errors.New("transport failure")

	// ErrParse means a listing page had no recognizable archive links,
	// which signals the site's markup changed and the scraper needs
	// updating. An empty-but-valid page is indistinguishable from a
	// malformed one, so this is a hard error rather than an empty result.
	ErrParse = errors.New("unrecognized listing page")

	// ErrArchiveStructure means a downloaded zip broke the
	// one-archive-one-table invariant: zero or multiple entries, or an
	// entry named differently from the archive itself.
	ErrArchiveStructure = errors.New("unexpected archive contents")
)
