package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, "Applications",
		[]string{"Candidate", "Status", "Experience"},
		[][]any{
			{"Alice", "screening", 4},
			{"Bob", "hired", 7},
		})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Candidate", "Status", "Experience"}, rows[0])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "7", rows[2][2])
}

func TestWriteXLSXEmptyRows(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, "Sheet1", []string{"Only", "Headers"}, nil)

	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
