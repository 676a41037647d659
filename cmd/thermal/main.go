// cmd/thermal/main.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// dispatches among the various conversion modes and handles the common
// file handling and reporting.

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/mmp/thermal/fpl"
	"github.com/mmp/thermal/log"
	"github.com/mmp/thermal/rand"
	"github.com/mmp/thermal/strategy"
	"github.com/mmp/thermal/task"
	"github.com/mmp/thermal/util"
	"github.com/mmp/thermal/wx"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var (
	taskFilename  = flag.String("task", "", "filename of JSON file with a task definition")
	outFilename   = flag.String("o", "", "output flight plan filename (default: task filename with .fpl extension)")
	printTemplate = flag.Bool("template", false, "print a task JSON template to stdout and exit")
	interactive   = flag.Bool("interactive", false, "build the task interactively")
	checkOnly     = flag.Bool("check", false, "check the validity of the task file but don't write a flight plan")
	batchDir      = flag.String("batch", "", "convert every .json task file in the given directory")
	nWorkers      = flag.Int("nworkers", 8, "number of worker goroutines for batch conversion")
	randSeed      = flag.Int64("seed", 0, "if non-zero, seed for the flight plan's random number generator")
	metarReport   = flag.String("metar", "", "METAR report to take wind and cloud base from")
	showStrategy  = flag.Bool("strategy", false, "print a flight strategy briefing for the generated task")
	dumpTask      = flag.Bool("dumptask", false, "dump the normalized task to stdout and exit")
	logLevel      = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir        = flag.String("logdir", "", "log file directory")
)

func main() {
	flag.Parse()

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndSaveCrash()

	usage := func() {
		fmt.Fprintf(os.Stderr, "usage: thermal [flags]\nwhere [flags] may be:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		usage()
	}

	if *printTemplate {
		b, err := json.MarshalIndent(task.Template(), "", "  ")
		if err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
	} else if *interactive {
		runInteractive(lg)
	} else if *batchDir != "" {
		convertBatch(*batchDir, lg)
	} else if *taskFilename != "" {
		if *checkOnly {
			checkTaskFile(*taskFilename, lg)
		} else {
			convertTaskFile(*taskFilename, *outFilename, lg)
		}
	} else {
		usage()
	}
}

// fatalError reports the error and exits. Task validation errors are
// printed one problem per line, each already prefixed with the path of the
// field it concerns; everything else goes through the logger.
func fatalError(lg *log.Logger, err error) {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			fmt.Fprintln(os.Stderr, p)
		}
	} else {
		lg.Errorf("%v", err)
	}
	os.Exit(1)
}

func renderOptions() fpl.Options {
	var opts fpl.Options
	if *randSeed != 0 {
		r := rand.MakeWithSeed(*randSeed)
		opts.Rand = &r
	}
	return opts
}

// loadTask reads, parses, and normalizes the task description in the
// given file, then folds in the METAR weather if one was given on the
// command line.
func loadTask(path string, lg *log.Logger) (*task.Task, *wx.METAR, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var raw task.RawTask
	if err := util.UnmarshalJSONBytes(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("%s: %v", path, err)
	}

	t, err := raw.Normalize()
	if err != nil {
		return nil, nil, err
	}

	m, err := applyMETAR(t, lg)
	if err != nil {
		return nil, nil, err
	}
	return t, m, nil
}

func applyMETAR(t *task.Task, lg *log.Logger) (*wx.METAR, error) {
	if *metarReport == "" {
		return nil, nil
	}

	m, err := wx.ParseMETAR(*metarReport)
	if err != nil {
		return nil, err
	}
	m.ApplyWeather(&t.Weather)
	lg.Infof("%s: took wind and cloud base from METAR", m.Station)
	return &m, nil
}

func convertTaskFile(path, out string, lg *log.Logger) {
	t, m, err := loadTask(path, lg)
	if err != nil {
		fatalError(lg, err)
	}

	if *dumpTask {
		godump.Dump(t)
		return
	}

	content, err := fpl.Render(t, renderOptions())
	if err != nil {
		fatalError(lg, err)
	}

	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".fpl"
	}
	// The rendered flight plan is CRLF-delimited; write its bytes exactly.
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		fatalError(lg, err)
	}

	printSummary(out, t, m)

	if *showStrategy {
		fmt.Println()
		fmt.Println(strategy.Generate(t))
	}
}

func printSummary(out string, t *task.Task, m *wx.METAR) {
	fmt.Printf("Generated: %s\n", out)
	if t.Airport != nil {
		fmt.Printf("  Airport:  %s\n", t.Airport.Name)
	}
	names := util.MapSlice(t.Turnpoints, func(tp task.Turnpoint) string { return tp.Name })
	fmt.Printf("  Route:    %s\n", strings.Join(names, " -> "))
	fmt.Printf("  Distance: %.1f km\n", t.Distance())
	fmt.Printf("  Aircraft: %s\n", t.Aircraft)

	wind := fmt.Sprintf("%.0f° @ %.0f kts", t.Weather.WindDirDeg, t.Weather.WindSpeedKts)
	if m != nil && m.WindGust != nil {
		wind += fmt.Sprintf(", gusting %d", *m.WindGust)
	}
	fmt.Printf("  Wind:     %s\n", wind)
}

// checkTaskFile validates the task description without writing a flight
// plan: duplicated and misspelled JSON keys first, since those silently
// disappear when unmarshaling, then full normalization and a throwaway
// render to catch anything only the renderer rejects.
func checkTaskFile(path string, lg *log.Logger) {
	b, err := os.ReadFile(path)
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}

	var e util.ErrorLogger
	for _, dup := range util.FindDuplicateJSONKeys(b) {
		if dup.Path == "" {
			e.ErrorString("%q: duplicate key", dup.Key)
		} else {
			e.ErrorString("%s: duplicate key %q", dup.Path, dup.Key)
		}
	}
	util.CheckJSON[task.RawTask](b, &e)
	if e.HaveErrors() {
		e.PrintErrors(lg)
		os.Exit(1)
	}

	var raw task.RawTask
	if err := util.UnmarshalJSONBytes(b, &raw); err != nil {
		lg.Errorf("%s: %v", path, err)
		os.Exit(1)
	}

	t, err := raw.Normalize()
	if err != nil {
		fatalError(lg, err)
	}
	if _, err := applyMETAR(t, lg); err != nil {
		fatalError(lg, err)
	}
	if _, err := fpl.Render(t, renderOptions()); err != nil {
		fatalError(lg, err)
	}

	names := util.MapSlice(t.Turnpoints, func(tp task.Turnpoint) string { return tp.Name })
	fmt.Printf("%s: ok\n", path)
	fmt.Printf("  Route:    %s\n", strings.Join(names, " -> "))
	fmt.Printf("  Distance: %.1f km\n", t.Distance())

	if !slices.Contains(strategy.AircraftNames(), t.Aircraft) {
		note := fmt.Sprintf("note: %s has no performance table entry; the strategy briefing will use conservative numbers.",
			t.Aircraft)
		d1, d2 := util.SelectInTwoEdits(t.Aircraft, slices.Values(strategy.AircraftNames()), nil, nil)
		if sim := util.Select(len(d1) > 0, d1, d2); len(sim) > 0 {
			note += " Did you mean: " + strings.Join(sim, ", ") + "?"
		}
		fmt.Println(note)
	}
}

// convertBatch converts every .json task file in the given directory,
// writing each flight plan next to its task file. Files are processed
// concurrently; a failure in one doesn't stop the others.
func convertBatch(dir string, lg *log.Logger) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		lg.Errorf("%s: no .json task files found", dir)
		os.Exit(1)
	}

	var mu sync.Mutex
	nErrors := 0

	var eg errgroup.Group
	eg.SetLimit(*nWorkers)
	for _, path := range paths {
		eg.Go(func() error {
			if err := convertOne(path, lg); err != nil {
				mu.Lock()
				nErrors++
				mu.Unlock()
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		lg.Errorf("%v", err)
	}

	if nErrors > 0 {
		lg.Errorf("%d of %d task files failed", nErrors, len(paths))
		os.Exit(1)
	}
	fmt.Printf("%s %d task files\n", util.Select(*checkOnly, "Checked", "Converted"), len(paths))
}

func convertOne(path string, lg *log.Logger) error {
	t, _, err := loadTask(path, lg)
	if err != nil {
		return err
	}

	content, err := fpl.Render(t, renderOptions())
	if err != nil {
		return err
	}

	if *checkOnly {
		fmt.Printf("%s: ok\n", path)
		return nil
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".fpl"
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return err
	}
	fmt.Printf("%s: %s, %.1f km\n", out, t.Aircraft, t.Distance())
	return nil
}
