package grid

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	os.Exit(m.Run())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regdata.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader("id,name\n1,Alice\n2,Bob\n3,Carol\n"))
	require.NoError(t, err)

	assert.Equal(t, []Column{{Name: "id", Kind: KindInt}, {Name: "name", Kind: KindText}}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, Row{IntValue(1), TextValue("Alice")}, tbl.Rows[0])
	assert.Equal(t, Row{IntValue(3), TextValue("Carol")}, tbl.Rows[2])
}

func TestParse_HeaderIsTrimmedAndBlankLinesSkipped(t *testing.T) {
	input := "\n   \n id , name ,city\r\n\n1,Alice,Oslo\r\n  \n 2 ,Bob,Rome\n"
	tbl, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "city"}, tbl.ColumnNames())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, 2, tbl.Rows[1][0].Int())
	assert.Equal(t, "Rome", tbl.Rows[1][2].String())
}

func TestParse_ExtraFieldsAreDropped(t *testing.T) {
	tbl, err := Parse(strings.NewReader("id,name\n1,Alice,extra,more\n"))
	require.NoError(t, err)

	require.Len(t, tbl.Rows[0], 2)
	assert.Equal(t, "Alice", tbl.Rows[0][1].String())
}

func TestParse_QuotesAreLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "unterminated quote stays on its line",
			input: "id,name\n1,\"Alice\n2,Bob\n3,Carol\n",
			want:  [][]string{{"1", `"Alice`}, {"2", "Bob"}, {"3", "Carol"}},
		},
		{
			name:  "quoted comma still splits",
			input: "id,name,city,zip\n1,\"Smith, J\",Oslo\n",
			want:  [][]string{{"1", `"Smith`, ` J"`, "Oslo"}},
		},
		{
			name:  "doubled quotes are kept",
			input: "id,memo\n4,say \"\"hi\"\"\n",
			want:  [][]string{{"4", `say ""hi""`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.Strings())
		})
	}
}

func TestParse_QuoteDoesNotHideLaterErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("id,name\n1,\"Alice\n2\n"))

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ReasonTooFewFields, fe.Reason)
	assert.Equal(t, 3, fe.Line)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, err error)
	}{
		{
			name:    "first column not an integer",
			input:   "id,name\nx,Alice\n",
			wantErr: ErrFormat,
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, ReasonNotInteger, fe.Reason)
				assert.Equal(t, 2, fe.Line)
				assert.Equal(t, "x", fe.Value)
				assert.Contains(t, err.Error(), "line 2")
				assert.Contains(t, err.Error(), "'x'")
			},
		},
		{
			name:    "id wider than 32 bits",
			input:   "id,name\n3000000000,Alice\n",
			wantErr: ErrFormat,
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, ReasonNotInteger, fe.Reason)
				assert.Equal(t, "3000000000", fe.Value)
			},
		},
		{
			name:    "missing field",
			input:   "id,name,city\n1,Alice\n",
			wantErr: ErrFormat,
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, ReasonTooFewFields, fe.Reason)
				assert.Equal(t, 3, fe.Expected)
				assert.Equal(t, 2, fe.Found)
				assert.Contains(t, err.Error(), "expected 3, found 2")
			},
		},
		{
			name:    "line numbers count blank lines",
			input:   "id,name\n\n1,Alice\n\nbad,Bob\n",
			wantErr: ErrFormat,
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, 5, fe.Line)
			},
		},
		{
			name:    "duplicate header",
			input:   "id,name,name\n1,a,b\n",
			wantErr: ErrFormat,
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, ReasonDuplicateColumn, fe.Reason)
				assert.Equal(t, 1, fe.Line)
			},
		},
		{
			name:    "header and blank lines only",
			input:   "id,name\n\n   \n\n",
			wantErr: ErrEmptyData,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, tbl)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "id,name\n1,Alice\n")

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoad_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, path, nf.Path)
}

func TestLoad_Directory(t *testing.T) {
	// Opening succeeds on some platforms but reading a directory never does.
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
}

func TestParse_LineTooLong(t *testing.T) {
	input := "id,name\n1," + strings.Repeat("a", maxLineSize) + "\n"
	_, err := Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrRead)
}
