package bench

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// maxFilename is the width of the file column; longer names keep their tail.
const maxFilename = 30

// WriteSummary prints one table per category in order of first appearance:
// a row per instance with the diversity of every solver in columns
// ("TIMEOUT" for a failed run, "-" for a solver outside that instance's
// suite), then the mean time of the successful runs per solver.
func WriteSummary(w io.Writer, exp *Experiment, columns []string) error {
	var (
		order  []string
		groups = map[string][]InstanceResult{}
	)
	for _, inst := range exp.Instances {
		if _, ok := groups[inst.Category]; !ok {
			order = append(order, inst.Category)
		}
		groups[inst.Category] = append(groups[inst.Category], inst)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "File\tn\tk\t" + strings.Join(columns, "\t") + "\t"

	for _, cat := range order {
		insts := groups[cat]
		fmt.Fprintf(tw, "%s INSTANCES (%d files)\n", cat, len(insts))
		fmt.Fprintln(tw, header)
		for _, inst := range insts {
			fmt.Fprintf(tw, "%s\t%d\t%d\t", truncateName(inst.Filename, maxFilename), inst.N, inst.K)
			for _, col := range columns {
				fmt.Fprintf(tw, "%s\t", cell(inst, col))
			}
			fmt.Fprintln(tw)
		}

		fmt.Fprint(tw, "Average Time (ms)\t\t\t")
		for _, col := range columns {
			fmt.Fprintf(tw, "%s\t", meanTime(insts, col))
		}
		fmt.Fprint(tw, "\n\n")
	}

	return tw.Flush()
}

func cell(inst InstanceResult, solver string) string {
	for _, r := range inst.Results {
		if r.Name != solver {
			continue
		}
		if !r.Success {
			return "TIMEOUT"
		}
		return fmt.Sprintf("%.2f", r.Diversity)
	}

	return "-"
}

func meanTime(insts []InstanceResult, solver string) string {
	var sum, n int64
	for _, inst := range insts {
		for _, r := range inst.Results {
			if r.Name == solver && r.Success {
				sum += r.TimeMS
				n++
			}
		}
	}
	if n == 0 {
		return "-"
	}

	return fmt.Sprintf("%d", sum/n)
}

// truncateName keeps the last max−3 bytes of long names behind "...".
func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}

	return "..." + name[len(name)-(max-3):]
}
