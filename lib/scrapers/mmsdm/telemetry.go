package mmsdm

import (
	"mmsmonthly/lib/restyutil"
	"mmsmonthly/lib/telemetry"

	"go.opentelemetry.io/otel"
)

var tracer = telemetry.Tracer("mmsmonthly.lib.scrapers.mmsdm")

var meter = otel.Meter("mmsmonthly.lib.scrapers.mmsdm")
var bytesDownloaded, _ = meter.Int64Counter("archive_bytes_downloaded")

var instrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput routes request/response exchange dumps of all
// clients constructed afterwards to out.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	instrumentOutput = out
}
