package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/greencalc/pkg/models"
)

func run(t *testing.T, dir string, args ...string) error {
	t.Helper()
	base := []string{"--config", filepath.Join(dir, "config.yaml"), "--data-dir", dir}
	rootCmd.SetArgs(append(base, args...))
	return rootCmd.Execute()
}

func TestBillAndApplianceCommands(t *testing.T) {
	t.Setenv("GREENCALC_DATA_DIR", "")
	t.Setenv("GREENCALC_LOG", "error")
	dir := t.TempDir()

	before := time.Now().Format(models.DateLayout)
	require.NoError(t, run(t, dir, "bill", "add", "--kwh", "10.5", "--cost", "2500"))
	after := time.Now().Format(models.DateLayout)
	require.NoError(t, run(t, dir, "appliance", "add", "heladera", "--hours", "24"))
	require.NoError(t, run(t, dir, "list"))

	bills, err := os.ReadFile(filepath.Join(dir, "registros.txt"))
	require.NoError(t, err)
	assert.Contains(t, []string{before + ",10.5,2500.0\n", after + ",10.5,2500.0\n"}, string(bills))

	inv, err := os.ReadFile(filepath.Join(dir, "electrodomesticos.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(inv), `{"tipo":"Heladera","cantidad":1,"horas_dia":24,`))

	out := filepath.Join(dir, "report.xlsx")
	require.NoError(t, run(t, dir, "export", "--format", "xlsx", "--out", out))
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestBillAddRejectsZeroConsumption(t *testing.T) {
	t.Setenv("GREENCALC_LOG", "error")
	dir := t.TempDir()

	err := run(t, dir, "bill", "add", "--kwh", "0", "--cost", "100")
	assert.ErrorIs(t, err, models.ErrInvalidBill)
	_, statErr := os.Stat(filepath.Join(dir, "registros.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplianceAddUnknownKind(t *testing.T) {
	t.Setenv("GREENCALC_LOG", "error")
	assert.Error(t, run(t, t.TempDir(), "appliance", "add", "Tostadora"))
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	d, err := parseDate("2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", d.Format(models.DateLayout))

	d, err = parseDate("7d", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-08", d.Format(models.DateLayout))

	_, err = parseDate("last week", now)
	assert.Error(t, err)
}

func TestFilterByDate(t *testing.T) {
	bills := []models.BillRecord{
		{Seq: 1, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)},
		{Seq: 2, Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)},
		{Seq: 3, Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)},
	}

	got, err := filterByDate(bills, "2024-02-01", "2024-02-28")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Seq)

	got, err = filterByDate(bills, "", "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Maria", displayName("maria@example.com"))
	assert.Equal(t, "Juan", displayName("juan pérez"))
	assert.Equal(t, "Admin", displayName(""))
}
