package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	want := []string{
		"regional_performance",
		"top_products",
		"monthly_trend",
		"quarterly_trend",
		"segment_analysis",
		"discount_impact",
		"category_performance",
		"shipping_analysis",
		"state_ranking",
		"row_counts",
	}

	all := All()
	require.Len(t, all, len(want))
	for i, rep := range all {
		assert.Equal(t, want[i], rep.Name)
		assert.NotEmpty(t, rep.Description, "report %s", rep.Name)
		assert.NotEmpty(t, rep.SQL, "report %s", rep.Name)
	}
}

func TestGet(t *testing.T) {
	rep, err := Get("top_products")
	require.NoError(t, err)
	assert.Equal(t, "top_products", rep.Name)
	assert.True(t, rep.TakesLimit)

	rep, err = Get("regional_performance")
	require.NoError(t, err)
	assert.False(t, rep.TakesLimit)
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("no_such_report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_report")
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "mutated"
	assert.Equal(t, "regional_performance", All()[0].Name)
}

func TestOnlyTopProductsTakesLimit(t *testing.T) {
	for _, rep := range All() {
		if rep.TakesLimit {
			assert.Contains(t, rep.SQL, "$1", "report %s", rep.Name)
		} else {
			assert.NotContains(t, rep.SQL, "$1", "report %s", rep.Name)
		}
	}
}

func testResultSet() *ResultSet {
	return &ResultSet{
		Columns: []string{"region", "total_sales"},
		Rows: [][]any{
			{"West", 1234.56},
			{"East", nil},
			{[]byte("Central"), 99.0},
		},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testResultSet(), "table"))

	out := buf.String()
	assert.Contains(t, out, "REGION")
	assert.Contains(t, out, "West")
	assert.Contains(t, out, "1234.56")
	assert.Contains(t, out, "(3 rows)")
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	rs := &ResultSet{Columns: []string{"a"}}
	require.NoError(t, Render(&buf, rs, "table"))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testResultSet(), "csv"))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"region", "total_sales"}, rows[0])
	assert.Equal(t, []string{"West", "1234.56"}, rows[1])
	assert.Equal(t, []string{"East", ""}, rows[2], "NULL renders as empty")
	assert.Equal(t, []string{"Central", "99"}, rows[3], "byte slices render as text")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testResultSet(), "json"))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "West", out[0]["region"])
	assert.Equal(t, 1234.56, out[0]["total_sales"])
	assert.Nil(t, out[1]["total_sales"])
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testResultSet(), "md"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "|"), "markdown table starts with a pipe")
	assert.Contains(t, out, "West")
}
