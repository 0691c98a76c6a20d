package mmsdm

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"mmsmonthly/lib/periods"

	"go.opentelemetry.io/otel/codes"
)

// ProgressSink receives cumulative download progress after every chunk.
// total is the Content-Length reported by the server, or -1 when unknown.
type ProgressSink interface {
	Progress(complete, total int64)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(complete, total int64)

func (f ProgressFunc) Progress(complete, total int64) { f(complete, total) }

// NopProgress discards progress reports.
var NopProgress = ProgressFunc(func(complete, total int64) {})

// Request fully specifies one retrievable archive.
type Request struct {
	Period periods.Period
	Dir    DataDirectory
	Table  string
	// Dest is the directory the zip is streamed into and the CSV is
	// extracted to. Created if it does not exist.
	Dest string
}

// reads of the response body happen one chunk at a time so peak memory
// stays bounded no matter how large the archive is
const chunkSize = 64 * 1024

// Retrieve streams the archive for req to disk, validates its structure and
// extracts the single CSV it contains, returning the CSV's path. The table
// is re-validated against a fresh listing fetch first, since catalog results
// a caller holds may be stale. The zip is deleted after a successful
// extraction; on an ErrArchiveStructure failure it is left in place for
// inspection and no CSV is written.
//
// sink may be nil. The chunk loop observes ctx between chunks, so
// cancellation aborts promptly, leaving a partial zip the caller should
// discard.
func (c *Client) Retrieve(ctx context.Context, req Request, sink ProgressSink) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Retrieve")
	defer span.End()

	if sink == nil {
		sink = NopProgress
	}

	table := strings.ToUpper(req.Table)
	entries, err := c.TableSizes(ctx, req.Period, req.Dir)
	if err != nil {
		span.SetStatus(codes.Error, "failed to list available tables")
		return "", err
	}
	if !containsTable(entries, table) {
		err := fmt.Errorf(
			"%w: table %s is not in the %s listing for %s",
			ErrNotFound, table, req.Dir, req.Period,
		)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if err := os.MkdirAll(req.Dest, 0o755); err != nil {
		return "", err
	}

	stem := ArchiveStem(req.Period, table)
	zipPath := filepath.Join(req.Dest, stem+".zip")
	url := c.archiveUrl(req.Period, req.Dir, table)

	if err := c.download(ctx, url, zipPath, sink); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "download failed")
		return "", err
	}

	csvPath, err := extractSingleEntry(zipPath, req.Dest, stem)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return "", fmt.Errorf("archive %s: %w", url, err)
	}

	if err := os.Remove(zipPath); err != nil {
		return "", err
	}
	return csvPath, nil
}

func containsTable(entries []TableEntry, table string) bool {
	for _, entry := range entries {
		if entry.Table == table {
			return true
		}
	}
	return false
}

func (c *Client) download(ctx context.Context, url, dest string, sink ProgressSink) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrTransport, url, err)
	}
	body := res.RawBody()
	defer body.Close()

	if res.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if !res.IsSuccess() {
		return fmt.Errorf("%w: GET %s: %s", ErrTransport, url, res.Status())
	}
	total := res.RawResponse.ContentLength

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	buf := make([]byte, chunkSize)
	var complete int64
	for {
		// the yield point between chunks: concurrent callers can
		// cancel a long download without waiting for the whole body
		if err := ctx.Err(); err != nil {
			out.Close()
			return err
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				out.Close()
				return err
			}
			complete += int64(n)
			bytesDownloaded.Add(ctx, int64(n))
			sink.Progress(complete, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			return fmt.Errorf("%w: reading %s: %v", ErrTransport, url, readErr)
		}
	}

	return out.Close()
}

// extractSingleEntry enforces the one-archive-one-table invariant: the zip
// must hold exactly one entry whose name, extension aside, matches the
// archive's own. The entry is extracted to dest under its original name.
func extractSingleEntry(zipPath, dest, stem string) (string, error) {
	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchiveStructure, err)
	}
	defer archive.Close()

	if len(archive.File) != 1 {
		return "", fmt.Errorf(
			"%w: holds %d entries, want exactly 1",
			ErrArchiveStructure, len(archive.File),
		)
	}

	entry := archive.File[0]
	entryName := path.Base(entry.Name)
	entryStem := strings.TrimSuffix(entryName, path.Ext(entryName))
	if !strings.EqualFold(entryStem, stem) {
		return "", fmt.Errorf(
			"%w: entry %q does not match archive name %q",
			ErrArchiveStructure, entry.Name, stem,
		)
	}

	in, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchiveStructure, err)
	}
	defer in.Close()

	csvPath := filepath.Join(dest, entryName)
	out, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		// no partial file left behind on a failed extraction
		os.Remove(csvPath)
		return "", err
	}
	return csvPath, out.Close()
}
