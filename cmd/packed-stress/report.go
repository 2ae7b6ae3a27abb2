package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	Workers     int
	Capacity    int
	RemoveRatio float64
	TotalTime   time.Duration

	Inserts     uint64
	Removes     uint64
	Gets        uint64
	StaleProbes uint64
	FinalLen    int
	Reuses      uint64
	Swaps       uint64
	PeakLen     int

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Add folds one worker's result into the report.
func (r *Report) Add(res workerResult) {
	r.Inserts += res.Inserts
	r.Removes += res.Removes
	r.Gets += res.Gets
	r.StaleProbes += res.StaleProbes
	r.FinalLen += res.FinalLen
	r.Reuses += res.Stats.Reuses
	r.Swaps += res.Stats.Swaps
	r.PeakLen += res.Stats.PeakLen
}

// TotalOps returns the total number of store operations performed.
func (r *Report) TotalOps() uint64 {
	return r.Inserts + r.Removes + r.Gets + r.StaleProbes
}

// OpsPerSecond returns aggregate throughput across all workers.
func (r *Report) OpsPerSecond() float64 {
	secs := r.TotalTime.Seconds()
	if secs == 0 {
		return 0
	}
	return float64(r.TotalOps()) / secs
}

func (r *Report) Render(w io.Writer) error {
	const reportTemplate = `
# packedgo Stress Report

## Configuration
- Workers:        {{.Workers}} (one store each)
- Store capacity: {{.Capacity}}
- Remove ratio:   {{.RemoveRatio}}
- Run time:       {{.TotalTime}}

## Throughput
- Total ops:      {{.TotalOps}} ({{printf "%.0f" .OpsPerSecond}} ops/s aggregate)
- Inserts:        {{.Inserts}} ({{.Reuses}} slot reuses)
- Removes:        {{.Removes}} ({{.Swaps}} swap compactions)
- Live gets:      {{.Gets}}
- Stale probes:   {{.StaleProbes}} (all correctly rejected)
- Peak live:      {{.PeakLen}} across workers, {{.FinalLen}} at exit

## Memory
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB -> {{mb .MemStatsEnd.HeapAlloc}} MB
- Sys Memory:  {{mb .MemStatsStart.Sys}} MB -> {{mb .MemStatsEnd.Sys}} MB
- GC cycles:   {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
