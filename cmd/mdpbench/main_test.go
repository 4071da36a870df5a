package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxdiv/distance"
	"github.com/katalvlaran/maxdiv/mdp"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"mdpbench", "--log-level", "error"}, args...))

	return stdout.String(), err
}

func TestGenerateThenSolve(t *testing.T) {
	dir := t.TempDir()
	inst := filepath.Join(dir, "gkd.txt")

	_, err := runApp(t, "generate", "--kind", "gkd", "--n", "12", "--k", "4", "--seed", "3", "--out", inst)
	require.NoError(t, err)
	m, err := distance.Load(inst)
	require.NoError(t, err)
	require.Equal(t, 12, m.N())
	require.Equal(t, 4, m.K())

	for _, algo := range []string{"ls-best", "tabu", "grasp", "genetic", "exhaustive", "exact"} {
		out, err := runApp(t, "solve", "--algorithm", algo, "--seed", "5", inst)
		require.NoError(t, err, algo)

		var sol mdp.Solution
		require.NoError(t, json.Unmarshal([]byte(out), &sol), out)
		require.Equal(t, algo, sol.Algorithm)
		require.NoError(t, mdp.Verify(m, sol, 1e-9))
	}
	mdp.RegisterExact(nil)

	out, err := runApp(t, "solve", "--algorithm", "exhaustive", "--k", "2", inst)
	require.NoError(t, err)
	require.Contains(t, out, `"status": "optimal"`)
}

func TestSolve_Errors(t *testing.T) {
	_, err := runApp(t, "solve")
	require.ErrorIs(t, err, errUsage)

	_, err = runApp(t, "solve", "--algorithm", "qubo", "missing.txt")
	require.Error(t, err)

	_, err = runApp(t, "generate", "--kind", "xyz")
	require.ErrorIs(t, err, errUsage)
}

func TestExportQUBO(t *testing.T) {
	inst := filepath.Join(t.TempDir(), "som.txt")
	_, err := runApp(t, "generate", "--kind", "som", "--n", "5", "--k", "2", "--out", inst)
	require.NoError(t, err)

	out, err := runApp(t, "export-qubo", "--penalty", "10", inst)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "c maxdiv n=5 k=2 penalty=10", lines[0])
	require.True(t, strings.HasPrefix(lines[2], "p qubo 0 5 5 "), lines[2])
}

func TestRun_SmallBatch(t *testing.T) {
	base := t.TempDir()
	out := t.TempDir()
	sub := filepath.Join(base, "MDG-a")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	_, err := runApp(t, "generate", "--kind", "mdg", "--n", "15", "--k", "3", "--out", filepath.Join(sub, "mdg_15.txt"))
	require.NoError(t, err)

	cfg := filepath.Join(base, "bench.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
categories: [MDG-a]
suites:
  full:
    - name: LS-Best
      algorithm: ls-best
    - name: GRASP
      algorithm: grasp
      grasp: {iterations: 3}
`), 0o644))

	metrics := filepath.Join(out, "metrics.prom")
	summary, err := runApp(t, "run", "--config", cfg, "--base-dir", base, "--out", out, "--metrics-file", metrics)
	require.NoError(t, err)
	require.Contains(t, summary, "MDG INSTANCES (1 files)")

	results, err := filepath.Glob(filepath.Join(out, "results_*.json"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.FileExists(t, filepath.Join(out, "visualize_results.py"))
	require.FileExists(t, metrics)
}
