package mmsdm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mmsmonthly/lib/periods"
	"mmsmonthly/lib/telemetry"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var testClock = clockwork.NewFakeClockAt(
	time.Date(2022, time.September, 15, 12, 0, 0, 0, time.UTC),
)

const testListingPath = "/2022/MMSDM_2022_07/MMSDM_Historical_Data_SQLLoader/DATA/"

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/mmsdm")
	t.Cleanup(cleanup)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientOptions{
		BaseUrl: server.URL + "/",
		Clock:   testClock,
	})
}

func TestFetchIndex(t *testing.T) {
	listing := buildListing([]listingRow{
		{"12.3 MB", "PUBLIC_DVD_DISPATCHLOAD_202207010000.zip"},
	})

	var requests int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, testListingPath, r.URL.Path)
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(listing))
	}))

	html, err := client.FetchIndex(
		context.Background(),
		periods.Period{Year: 2022, Month: 7},
		DirData,
	)
	require.NoError(t, err)
	require.Equal(t, listing, html)
	require.Equal(t, 1, requests)
}

func TestFetchIndexNotFoundUpstream(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.FetchIndex(
		context.Background(),
		periods.Period{Year: 2022, Month: 7},
		DirPredispatchAllData,
	)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFetchIndexServerFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchIndex(
		context.Background(),
		periods.Period{Year: 2022, Month: 7},
		DirData,
	)
	require.ErrorIs(t, err, ErrTransport)
}

func TestFetchIndexRejectsOutOfRangePeriods(t *testing.T) {
	var requests int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	outOfRange := []periods.Period{
		{Year: 1999, Month: 1},
		{Year: periods.EpochYear, Month: periods.EpochMonth - 1},
		{Year: 2022, Month: 10}, // the month after the fake clock
		{Year: 2023, Month: 1},
		{Year: 2022, Month: 13},
	}
	for _, p := range outOfRange {
		_, err := client.FetchIndex(context.Background(), p, DirData)
		require.ErrorIs(t, err, ErrNotFound, "period %s", p)
	}
	require.Equal(t, 0, requests, "out-of-range periods must not hit the network")
}

func TestAvailablePeriods(t *testing.T) {
	client := NewClient(ClientOptions{Clock: testClock})

	catalog := client.AvailablePeriods()
	require.Equal(t, []int{7, 8, 9, 10, 11, 12}, catalog[periods.EpochYear])
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, catalog[2022])
}

func TestAvailableTables(t *testing.T) {
	listing := buildListing([]listingRow{
		{"523 KB", "PUBLIC_DVD_DUDETAILSUMMARY_202207010000.zip"},
		{"12.3 MB", "PUBLIC_DVD_DISPATCHLOAD_202207010000.zip"},
	})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listing))
	}))

	tables, err := client.AvailableTables(
		context.Background(),
		periods.Period{Year: 2022, Month: 7},
		DirData,
	)
	require.NoError(t, err)
	require.Equal(t, []string{"DISPATCHLOAD", "DUDETAILSUMMARY"}, tables)
}

func TestParseDataDirectory(t *testing.T) {
	for _, dir := range DataDirectories {
		parsed, err := ParseDataDirectory(string(dir))
		require.NoError(t, err)
		require.Equal(t, dir, parsed)
	}

	_, err := ParseDataDirectory("FAKE_DATA")
	require.Error(t, err)
}
