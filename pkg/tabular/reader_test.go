package tabular_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/dmitrymomot/phenokit"
	"github.com/dmitrymomot/phenokit/pkg/tableschema"
	"github.com/dmitrymomot/phenokit/pkg/tabular"
)

const sampleCSV = "compound,production,growth,medium,comment\n" +
	"shikimate,4.56,0.21,M9_medium.csv,batch 7\n" +
	"citrate,2.1,0.15,,\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func gzipBytes(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestReader(t *testing.T) {
	t.Parallel()

	t.Run("streams csv rows as records", func(t *testing.T) {
		t.Parallel()

		r, err := tabular.New(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, []string{"compound", "production", "growth", "medium", "comment"}, r.Header())

		first, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, phenokit.Record{
			"compound":   "shikimate",
			"production": "4.56",
			"growth":     "0.21",
			"medium":     "M9_medium.csv",
			"comment":    "batch 7",
		}, first)

		second, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "", second["medium"])

		_, err = r.Next()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("readall drains the input", func(t *testing.T) {
		t.Parallel()

		r, err := tabular.New(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		defer r.Close()

		records, err := r.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "citrate", records[1]["compound"])
	})

	t.Run("normalizes header cells", func(t *testing.T) {
		t.Parallel()

		in := " Compound ,Production Rate,GROWTH\nshikimate,4.5,0.2\n"
		r, err := tabular.New(strings.NewReader(in))
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, []string{"compound", "production_rate", "growth"}, r.Header())
	})

	t.Run("names blank header cells by position", func(t *testing.T) {
		t.Parallel()

		r, err := tabular.New(strings.NewReader("compound,,growth\na,b,c\n"))
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, []string{"compound", "col_1", "growth"}, r.Header())
	})

	t.Run("rejects duplicate columns", func(t *testing.T) {
		t.Parallel()

		_, err := tabular.New(strings.NewReader("growth,Growth\n1,2\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, tabular.ErrDuplicateColumn)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := tabular.New(strings.NewReader(""))
		assert.ErrorIs(t, err, tabular.ErrMissingHeader)
	})

	t.Run("reports ragged rows", func(t *testing.T) {
		t.Parallel()

		r, err := tabular.New(strings.NewReader("a,b\n1,2,3\n"))
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Next()
		require.Error(t, err)
		assert.ErrorIs(t, err, csv.ErrFieldCount)
	})

	t.Run("strips a utf-8 byte order mark", func(t *testing.T) {
		t.Parallel()

		r, err := tabular.New(strings.NewReader("\uFEFF" + sampleCSV))
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, "compound", r.Header()[0])
	})

	t.Run("decodes utf-16 input with a byte order mark", func(t *testing.T) {
		t.Parallel()

		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		encoded, err := enc.Bytes([]byte(sampleCSV))
		require.NoError(t, err)

		r, err := tabular.New(bytes.NewReader(encoded))
		require.NoError(t, err)
		defer r.Close()

		rec, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "shikimate", rec["compound"])
	})

	t.Run("honors a custom delimiter", func(t *testing.T) {
		t.Parallel()

		r, err := tabular.New(strings.NewReader("a;b\n1;2\n"), tabular.WithDelimiter(';'))
		require.NoError(t, err)
		defer r.Close()

		rec, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "1", rec["a"])
		assert.Equal(t, "2", rec["b"])
	})

	t.Run("panics on an unusable delimiter", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			_, _ = tabular.New(strings.NewReader("a\n"), tabular.WithDelimiter('\n'))
		})
	})

	t.Run("decompresses with the gzip option", func(t *testing.T) {
		t.Parallel()

		r, err := tabular.New(bytes.NewReader(gzipBytes(t, sampleCSV)), tabular.WithGzip())
		require.NoError(t, err)
		defer r.Close()

		records, err := r.ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("reads a csv file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "results.csv", sampleCSV)
		r, err := tabular.Open(path)
		require.NoError(t, err)
		defer r.Close()

		records, err := r.ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("infers tabs from the tsv extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "results.tsv", strings.ReplaceAll(sampleCSV, ",", "\t"))
		r, err := tabular.Open(path)
		require.NoError(t, err)
		defer r.Close()

		rec, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "shikimate", rec["compound"])
	})

	t.Run("unwraps gzip behind the inner extension", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "results.tsv.gz")
		data := gzipBytes(t, strings.ReplaceAll(sampleCSV, ",", "\t"))
		require.NoError(t, os.WriteFile(path, data, 0o644))

		r, err := tabular.Open(path)
		require.NoError(t, err)

		records, err := r.ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.NoError(t, r.Close())
	})

	t.Run("fails on missing files", func(t *testing.T) {
		t.Parallel()

		_, err := tabular.Open(filepath.Join(t.TempDir(), "absent.csv"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("fails on corrupt gzip data", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "broken.csv.gz", "definitely not gzip")
		_, err := tabular.Open(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gzip")
	})
}

func TestReaderAsRecordSource(t *testing.T) {
	t.Parallel()

	t.Run("feeds the stream validator", func(t *testing.T) {
		t.Parallel()

		schema, err := tableschema.Builtin().Get("strain_performance")
		require.NoError(t, err)

		in := sampleCSV + "badrow,not-a-number,0.3,,\n"
		r, err := tabular.New(strings.NewReader(in))
		require.NoError(t, err)
		defer r.Close()

		var accepted, rejected int
		err = phenokit.ValidateStream(context.Background(), schema, r, func(_ int, res phenokit.Result) error {
			if res.Accepted() {
				accepted++
			} else {
				rejected++
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, accepted)
		assert.Equal(t, 1, rejected)
	})
}
