package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// TimestampLayout formats Experiment.Timestamp and the results file name.
const TimestampLayout = "20060102_150405"

// Experiment is the persisted outcome of one batch.
type Experiment struct {
	ID        string           `json:"id"`
	Timestamp string           `json:"timestamp"`
	System    SysInfo          `json:"system"`
	Config    Config           `json:"config"`
	Instances []InstanceResult `json:"instances"`
}

// InstanceResult holds every solver result for one instance file.
type InstanceResult struct {
	Filename string         `json:"filename"`
	Category string         `json:"category"`
	N        int            `json:"n"`
	K        int            `json:"k"`
	Results  []SolverResult `json:"results"`
}

// SolverResult aggregates the trials of one SolverSpec on one instance.
// Diversity and Selection are those of the best successful trial; TimeMS is
// the mean wall time of the successful trials.
type SolverResult struct {
	Name      string  `json:"name"`
	Algorithm string  `json:"algorithm"`
	Status    string  `json:"status"`
	Diversity float64 `json:"diversity"`
	TimeMS    int64   `json:"time_ms"`
	Success   bool    `json:"success"`
	Trials    int     `json:"trials"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stddev"`
	Best      float64 `json:"best"`
	Worst     float64 `json:"worst"`
	Selection []int   `json:"selection,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	RAM      string `json:"ram"`
}

// CollectSysInfo queries the host; fields that cannot be read stay "unknown".
func CollectSysInfo() SysInfo {
	info := SysInfo{Platform: "unknown", CPU: "unknown", RAM: "unknown"}
	if h, err := host.Info(); err == nil && h.Platform != "" {
		info.Platform = h.Platform
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 {
		info.CPU = c[0].ModelName
	}
	if v, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", v.Total/1024/1024/1024)
	}

	return info
}

// Save writes exp as indented JSON to dir/results_<timestamp>.json and
// returns the path.
func Save(exp *Experiment, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "results_"+exp.Timestamp+".json")

	return path, os.WriteFile(path, data, 0o644)
}

// LoadExperiment reads a file written by Save.
func LoadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var exp Experiment
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("bench: %s: %w", path, err)
	}

	return &exp, nil
}
