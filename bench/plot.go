package bench

import (
	_ "embed"
	"os"
	"path/filepath"
)

// PlotScriptName is the file written by WritePlotScript.
const PlotScriptName = "visualize_results.py"

//go:embed visualize_results.py
var plotScript []byte

// WritePlotScript writes the matplotlib script that charts a results file
// into dir and returns its path.
func WritePlotScript(dir string) (string, error) {
	path := filepath.Join(dir, PlotScriptName)

	return path, os.WriteFile(path, plotScript, 0o755)
}
