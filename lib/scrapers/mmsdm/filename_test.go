package mmsdm

import (
	"testing"

	"mmsmonthly/lib/periods"

	"github.com/stretchr/testify/require"
)

func TestArchiveStem(t *testing.T) {
	stem := ArchiveStem(periods.Period{Year: 2022, Month: 7}, "DISPATCHLOAD")
	require.Equal(t, "PUBLIC_DVD_DISPATCHLOAD_202207010000", stem)

	stem = ArchiveStem(periods.Period{Year: 2009, Month: 12}, "biddayoffer_d")
	require.Equal(t, "PUBLIC_DVD_BIDDAYOFFER_D_200912010000", stem)
}

func TestTableFromFilename(t *testing.T) {
	testCases := []struct {
		filename string
		table    string
		ok       bool
	}{
		{"PUBLIC_DVD_DISPATCHLOAD_202207010000.zip", "DISPATCHLOAD", true},
		{"PUBLIC_DVD_BIDDAYOFFER_D_202207010000.zip", "BIDDAYOFFER_D", true},
		{"PUBLIC_DVD_P5MIN_UNITSOLUTION_202001010000.zip", "P5MIN_UNITSOLUTION", true},
		{"public_dvd_dispatchload_202207010000.ZIP", "DISPATCHLOAD", true},
		// directories and navigation chrome
		{"MMSDM_2022_07", "", false},
		{"[To Parent Directory]", "", false},
		{"DATA", "", false},
		// archive-adjacent names that break the convention
		{"PUBLIC_DVD_DISPATCHLOAD_2022.zip", "", false},
		{"PUBLIC_DVD_DISPATCHLOAD_202207010000.csv", "", false},
		{"DISPATCHLOAD_202207010000.zip", "", false},
		{"PUBLIC_DVD__202207010000.zip", "", false},
	}

	for _, test := range testCases {
		table, ok := TableFromFilename(test.filename)
		require.Equal(t, test.ok, ok, "filename %q", test.filename)
		require.Equal(t, test.table, table, "filename %q", test.filename)
	}
}
