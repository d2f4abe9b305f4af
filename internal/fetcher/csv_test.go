package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRows(t *testing.T, rowCh <-chan Row, errCh <-chan error) []Row {
	t.Helper()
	var rows []Row
	for row := range rowCh {
		rows = append(rows, row)
	}
	require.NoError(t, <-errCh)
	return rows
}

func TestStreamRecords(t *testing.T) {
	input := "code,product_name,brands\n" +
		"123,Cola,ColaCo\n" +
		"456,Chips,CrunchCo\n"

	rowCh, errCh := StreamRecords(context.Background(), strings.NewReader(input), CSVOptions{})
	rows := collectRows(t, rowCh, errCh)

	require.Len(t, rows, 2)
	assert.Equal(t, "Cola", rows[0]["product_name"])
	assert.Equal(t, "CrunchCo", rows[1]["brands"])
}

func TestStreamRecords_RaggedRows(t *testing.T) {
	input := "code,product_name,brands\n" +
		"123,Cola\n"

	rowCh, errCh := StreamRecords(context.Background(), strings.NewReader(input), CSVOptions{})
	rows := collectRows(t, rowCh, errCh)

	require.Len(t, rows, 1)
	assert.Equal(t, "Cola", rows[0]["product_name"])
	assert.Equal(t, "", rows[0]["brands"])
}

func TestStreamRecords_TabDelimited(t *testing.T) {
	input := "code\tname\n123\tGranola\n"

	rowCh, errCh := StreamRecords(context.Background(), strings.NewReader(input), CSVOptions{Delimiter: '\t'})
	rows := collectRows(t, rowCh, errCh)

	require.Len(t, rows, 1)
	assert.Equal(t, "Granola", rows[0]["name"])
}

func TestStreamRecords_Empty(t *testing.T) {
	rowCh, errCh := StreamRecords(context.Background(), strings.NewReader(""), CSVOptions{})
	rows := collectRows(t, rowCh, errCh)
	assert.Empty(t, rows)
}

func TestStreamRecords_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "code\n1\n2\n3\n"
	rowCh, errCh := StreamRecords(ctx, strings.NewReader(input), CSVOptions{})
	for range rowCh {
	}
	require.Error(t, <-errCh)
}

func TestRowGet(t *testing.T) {
	row := Row{"Brand": " ColaCo ", "brand": "ignored", "empty": ""}

	assert.Equal(t, "ColaCo", row.Get("Brand", "brand"))
	assert.Equal(t, "ColaCo", row.Get("empty", "Brand"))
	assert.Equal(t, "", row.Get("missing"))
}
