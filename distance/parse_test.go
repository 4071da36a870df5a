package distance_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxdiv/distance"
)

const scenarioText = `4 2
0 1 1
0 2 5
0 3 2
1 2 3
1 3 4
2 3 6
`

func TestParse_Scenario(t *testing.T) {
	m, err := distance.Parse(strings.NewReader(scenarioText))
	require.NoError(t, err)
	require.Equal(t, 4, m.N())
	require.Equal(t, 2, m.K())
	require.Equal(t, 6.0, m.At(3, 2))
	require.Equal(t, 4.0, m.At(3, 1))
}

func TestParse_SkipsShortAndBlankLines(t *testing.T) {
	in := "\n\n3 1\n\n0 1 2.5\n# note\n1 2 1 extra\n"
	m, err := distance.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2.5, m.At(1, 0))
	require.Equal(t, 1.0, m.At(2, 1))
	require.Zero(t, m.At(0, 2))
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", distance.ErrParse},
		{"short header", "4\n", distance.ErrParse},
		{"bad n", "x 2\n", distance.ErrParse},
		{"bad k", "4 y\n", distance.ErrParse},
		{"k too big", "2 3\n", distance.ErrInvalidK},
		{"n zero", "0 0\n", distance.ErrBadShape},
		{"n above cap", "200000000 1\n0 1 5\n", distance.ErrBadShape},
		{"n squared overflows", "3037000500 1\n0 1 5\n", distance.ErrBadShape},
		{"n beyond 32 bits", "4294967296 1\n0 1 5\n", distance.ErrBadShape},
		{"bad i", "3 1\na 1 2\n", distance.ErrParse},
		{"bad d", "3 1\n0 1 z\n", distance.ErrParse},
		{"out of range", "3 1\n0 3 2\n", distance.ErrIndexOutOfRange},
		{"negative", "3 1\n0 1 -2\n", distance.ErrNegativeDistance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := distance.Parse(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_ErrorCarriesLine(t *testing.T) {
	_, err := distance.Parse(strings.NewReader("3 1\n0 1 2\n0 1 q\n"))
	require.ErrorIs(t, err, distance.ErrParse)
	require.Contains(t, err.Error(), "line 3")
}

func TestLoad_NamesModelAfterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "GKD-a_1_n4_m2.txt")
	require.NoError(t, os.WriteFile(path, []byte(scenarioText), 0o644))

	m, err := distance.Load(path)
	require.NoError(t, err)
	require.Equal(t, "GKD-a_1_n4_m2.txt", m.Name())

	m, err = distance.Load(path, distance.WithName("custom"))
	require.NoError(t, err)
	require.Equal(t, "custom", m.Name())

	_, err = distance.Load(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_ParseRoundTrip(t *testing.T) {
	m, err := distance.Parse(strings.NewReader(scenarioText))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, distance.Write(&buf, m))
	require.True(t, strings.HasPrefix(buf.String(), "4 2\n0 1 1\n"))

	back, err := distance.Parse(&buf)
	require.NoError(t, err)
	for i := 0; i < m.N(); i++ {
		require.Equal(t, m.Row(i), back.Row(i))
	}
}
