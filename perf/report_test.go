package perf

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/hupe1980/everybit/blobstore"
	"github.com/hupe1980/everybit/internal/compress"
	"github.com/hupe1980/everybit/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		Budget: 10 * time.Millisecond,
		Best:   1,
		Tiers: []Tier{
			{Index: 0, Size: 5, Offset: 1, Length: 3, Bytes: 0, Shift: 2, Elapsed: 1600 * time.Nanosecond},
			{Index: 1, Size: 8, Offset: 2, Length: 5, Bytes: 0, Shift: 3, Elapsed: 2 * time.Millisecond},
			{Index: 2, Size: 13, Offset: 3, Length: 8, Bytes: 1, Shift: 5, Elapsed: 12345678 * time.Nanosecond, Exceeded: true},
		},
	}
}

const sampleText = "TIER SIZE(B)         #SHIFTS         TIME(s)   \n" +
	"0    0               2               0.000002\n" +
	"1    0               3               0.002000\n" +
	"2    1               5               0.012346 exceeded 0.01s cutoff\n" +
	"------\n" +
	"Succeeded tier: 1\n"

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"Json", FormatJSON},
	}
	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseFormat("yaml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, "text", FormatText.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "Format(7)", Format(7).String())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleResult().WriteText(&buf))
	assert.Equal(t, sampleText, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleResult().Write(&buf, FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(1), got["best"])
	assert.Equal(t, float64(10*time.Millisecond), got["budget_ns"])

	tiers, ok := got["tiers"].([]any)
	require.True(t, ok)
	require.Len(t, tiers, 3)
	last := tiers[2].(map[string]any)
	assert.Equal(t, true, last["exceeded"])
	assert.Equal(t, float64(5), last["shifts"])
	assert.Equal(t, float64(1), last["bytes"])
	assert.Equal(t, float64(13), last["size_bits"])

	var back Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *sampleResult(), back)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := sampleResult().Write(io.Discard, Format(9))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteReport(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})

	for _, name := range []string{"perf.txt", "perf.txt.zst", "perf.txt.gz", "perf.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, WriteReport(ctx, store, name, sampleResult(), FormatText, WithResourceController(rc)))

			raw, err := blobstore.ReadAll(ctx, store, name)
			require.NoError(t, err)

			dec, err := compress.NewReader(compress.Detect(name), bytes.NewReader(raw))
			require.NoError(t, err)
			defer dec.Close()

			got, err := io.ReadAll(dec)
			require.NoError(t, err)
			assert.Equal(t, sampleText, string(got))
		})
	}
}

func TestWriteReport_LocalJSON(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	require.NoError(t, WriteReport(ctx, store, "runs/perf.json", sampleResult(), FormatJSON))

	raw, err := blobstore.ReadAll(ctx, store, "runs/perf.json")
	require.NoError(t, err)
	var back Result
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, 1, back.Best)
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	store := blobstore.NewMemoryStore()
	err := WriteReport(context.Background(), store, "perf.out", sampleResult(), Format(5))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
