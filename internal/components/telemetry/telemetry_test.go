package telemetry_test

import (
	"testing"

	"netinventory/internal/components/telemetry"
	"netinventory/internal/components/telemetry/telemetrytest"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &telemetrytest.Recorder{}
	tel := telemetry.NewScopedAPI("sg200_scraper", rec)

	tel.ReportBroken("client.fetch-mac-table", "boom")
	tel.ReportWarning("client.login", "slow")
	tel.ReportCount("entries", 3)

	broken := rec.Reports(telemetrytest.Broken)
	require.Len(t, broken, 1)
	require.Equal(t, "sg200_scraper:client.fetch-mac-table", broken[0].ID)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	require.True(t, rec.Has(telemetrytest.Warning, "client.login"))
	counts := rec.Reports(telemetrytest.Count)
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}
