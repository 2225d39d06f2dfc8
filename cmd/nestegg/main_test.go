package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/nestegg/internal/config"
	"github.com/Veraticus/nestegg/internal/dashboard"
	"github.com/Veraticus/nestegg/internal/model"
)

// harness runs the real root command against a throwaway sqlite database.
type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	content := "store:\n  driver: sqlite\n  path: " + filepath.Join(dir, "nestegg.db") + "\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))
	return &harness{t: t, dir: dir, config: cfg}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", h.config}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "nestegg "+version+"\n", h.mustRun("version"))
}

func TestShowDefaults(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("show")
	assert.Contains(t, out, "LOCK")
	assert.Contains(t, out, "$660,000")
}

func TestShowJSON(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("show", "--format", "json")

	var snap struct {
		State   map[string]any `json:"state"`
		Derived map[string]any `json:"derived"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Contains(t, snap.State, "cash")
	assert.Contains(t, snap.Derived, "locked")
}

func TestShowUnknownFormat(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "show", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestSetAndGet(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("set", "cash.cashBalance", "$700,000")
	assert.Contains(t, out, "$700,000")

	assert.Equal(t, "700000\n", h.mustRun("get", "cash.cashBalance", "--raw"))
	assert.Equal(t, "$700,000\n", h.mustRun("get", "cash.cashBalance"))
}

func TestSetPersistsAcrossRuns(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", "inflation.cpiYoY", "4.5%")
	assert.Equal(t, "0.045\n", h.mustRun("get", "inflation.cpiYoY", "--raw"))
}

func TestSetRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "set", "nope.field", "1")
	require.Error(t, err)

	_, err = h.run("", "set", "spouse.confidence", "purple")
	require.Error(t, err)

	_, err = h.run("", "get", "nope.field")
	require.Error(t, err)
}

func TestSetPlannedWhileLocked(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "set", "discretionary.planned.travel", "50000")
	require.Error(t, err)
	require.ErrorIs(t, err, dashboard.ErrDiscretionaryLocked)
	assert.Contains(t, err.Error(), "drawdown compliance")

	h.mustRun("set", "super.drawdownAnnual", "90000")
	h.mustRun("set", "discretionary.planned.travel", "50000")
	assert.Equal(t, "50000\n", h.mustRun("get", "discretionary.planned.travel", "--raw"))
}

func TestFields(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("fields")
	assert.Contains(t, out, "cash.cashBalance")
	assert.Contains(t, out, "spouse.confidence")

	out = h.mustRun("fields", "--section", "cash")
	assert.Contains(t, out, "cash.cashBalance")
	assert.NotContains(t, out, "spouse.confidence")
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", "cash.cashBalance", "700000")

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("export")), &doc))
	assert.InDelta(t, 700000.0, doc["cash"]["cashBalance"], 0.001)

	out := h.mustRun("export", "--format", "yaml")
	assert.Contains(t, out, "cashBalance: 700000")

	_, err := h.run("", "export", "--format", "toml")
	require.ErrorIs(t, err, dashboard.ErrUnknownFormat)
}

func TestExportToFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "out.json")
	h.mustRun("export", "-o", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cashBalance"`)
}

func TestExportToClipboard(t *testing.T) {
	h := newHarness(t)

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	h.mustRun("export", "--clipboard")
	assert.Contains(t, copied, `"verdict"`)
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", "cash.cashBalance", "1")

	out, err := h.run("n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "canceled")
	assert.Equal(t, "1\n", h.mustRun("get", "cash.cashBalance", "--raw"))

	out, err = h.run("y\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "reset to defaults")
	assert.Equal(t, "660000\n", h.mustRun("get", "cash.cashBalance", "--raw"))

	h.mustRun("set", "cash.cashBalance", "1")
	h.mustRun("reset", "--force")
	assert.Equal(t, "660000\n", h.mustRun("get", "cash.cashBalance", "--raw"))
}

const statement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>AUD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20250101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250610120000[0:GMT]
<TRNAMT>-1000.00
<FITID>CC2025061001
<NAME>QANTAS AIRWAYS
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250820120000[0:GMT]
<TRNAMT>-250.00
<FITID>CC2025082001
<NAME>HOTEL KYOTO
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250821120000[0:GMT]
<TRNAMT>50.00
<FITID>CC2025082101
<NAME>REFUND
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260110120000[0:GMT]
<TRNAMT>-310.00
<FITID>CC2026011001
<NAME>AEROCLUB HIRE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-1510.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestImportOFX(t *testing.T) {
	h := newHarness(t)
	first := filepath.Join(h.dir, "card-a.qfx")
	second := filepath.Join(h.dir, "card-b.qfx")
	require.NoError(t, os.WriteFile(first, []byte(statement), 0o600))
	require.NoError(t, os.WriteFile(second, []byte(statement), 0o600))

	out := h.mustRun("import-ofx", "--category", "travel", "--year", "2025", "--dry-run", first)
	assert.Contains(t, out, "$1,250")
	assert.Contains(t, out, "dry run")
	assert.Equal(t, "0\n", h.mustRun("get", "discretionary.actual.travel", "--raw"))

	// The same transactions in two files count once.
	h.mustRun("import-ofx", "--category", "travel", "--year", "2025", filepath.Join(h.dir, "*.qfx"))
	assert.Equal(t, "1250\n", h.mustRun("get", "discretionary.actual.travel", "--raw"))

	h.mustRun("import-ofx", "--category", "travel", "--year", "2026", "--add", first)
	assert.Equal(t, "1560\n", h.mustRun("get", "discretionary.actual.travel", "--raw"))
}

func TestImportOFXErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "import-ofx", "--category", "yachts", "x.ofx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	_, err = h.run("", "import-ofx", "--category", "travel", filepath.Join(h.dir, "missing-*.ofx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no statement files")

	_, err = h.run("", "import-ofx", "x.ofx")
	require.Error(t, err)
}

func TestEnvironmentOverridesConfig(t *testing.T) {
	h := newHarness(t)
	t.Setenv("NESTEGG_STORE_DRIVER", "memory")

	h.mustRun("set", "cash.cashBalance", "1")
	// memory store starts fresh on each run
	assert.Equal(t, "660000\n", h.mustRun("get", "cash.cashBalance", "--raw"))
}

func TestSaveActualSkippedWhenInterrupted(t *testing.T) {
	h := newHarness(t)
	a := &app{cfg: &config.Config{
		Store: config.StoreConfig{
			Driver: "sqlite",
			Path:   filepath.Join(h.dir, "nestegg.db"),
			Key:    config.DefaultRecordKey,
		},
		Dashboard: config.DashboardConfig{EnforceLock: true},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, a.saveActual(ctx, &out, model.CategoryTravel, 2025, 1250, 2, false))
	assert.Empty(t, out.String(), "no success line after an interrupt")
	assert.Equal(t, "0\n", h.mustRun("get", "discretionary.actual.travel", "--raw"))

	require.NoError(t, a.saveActual(context.Background(), &out, model.CategoryTravel, 2025, 1250, 2, false))
	assert.Contains(t, out.String(), "$1,250")
	assert.Equal(t, "1250\n", h.mustRun("get", "discretionary.actual.travel", "--raw"))
}
