package system

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// RunStats collects the numbers printed by the performance report.
type RunStats struct {
	BuildVersion string
	Command      string
	Document     string
	Regions      int
	Keyframes    int
	Samples      int
	Start        time.Time
}

// Report writes the performance report for a finished run to w.
func Report(w io.Writer, s RunStats) {
	total := time.Since(s.Start)

	memLine := "n/a"
	if vm, err := mem.VirtualMemory(); err == nil {
		memLine = fmt.Sprintf("%.1f%% of %d MiB", vm.UsedPercent, vm.Total>>20)
	}

	fmt.Fprintf(w,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Command: %s\n"+
			"Regions: %d | Keyframes: %d | Samples: %d\n"+
			"Total Time: %.3fs\n"+
			"Host Memory: %s\n"+
			"----------------------------\n",
		s.BuildVersion, s.Command, s.Regions, s.Keyframes, s.Samples, total.Seconds(), memLine,
	)
}

// AppendLog appends a one-line summary of the run to path.
func AppendLog(path string, s RunStats) error {
	entry := fmt.Sprintf("[%s] Build: %s | Command: %s | Document: %s | Regions: %d | Keyframes: %d | Samples: %d | Total: %.3fs\n",
		time.Now().Format("2006-01-02 15:04:05"),
		s.BuildVersion,
		s.Command,
		filepath.Base(s.Document),
		s.Regions,
		s.Keyframes,
		s.Samples,
		time.Since(s.Start).Seconds(),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(entry)
	return err
}
