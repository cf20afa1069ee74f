/*
 * Kestrel - a UCI chess engine
 *
 * MIT License
 *
 * Copyright (c) 2026 Kestrel contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kvchess/kestrel/internal/config"
	"github.com/kvchess/kestrel/internal/logging"
	"github.com/kvchess/kestrel/internal/movegen"
	"github.com/kvchess/kestrel/internal/position"
	"github.com/kvchess/kestrel/internal/search"
	"github.com/kvchess/kestrel/internal/uci"
	"github.com/kvchess/kestrel/internal/util"
	"github.com/kvchess/kestrel/internal/version"
)

var out = message.NewPrinter(language.German)

func main() {
	showVersion := flag.Bool("version", false, "prints version and exits")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to ./cpu.pprof for the duration of the run\n(go tool pprof -http=localhost:8080 kestrel cpu.pprof)")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(critical|error|warning|notice|info|debug)")
	logPath := flag.String("logpath", "../logs", "path where to write log files to")
	perftDepth := flag.Int("perft", 0, "runs perft up to the given depth and exits\nuse -fen to choose the position")
	fen := flag.String("fen", position.StartFen, "position for -perft and -nps")
	npsSecs := flag.Int("nps", 0, "runs a nodes-per-second measurement for the given number of seconds and exits\nuse -fen to choose the position")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if *showVersion {
		printVersionInfo()
		return
	}

	// The config file path must be in place before Setup() reads it.
	config.ConfFile = *configFile
	config.Setup()

	// Command line options overrule both the config file and the defaults.
	if *logPath != "" {
		config.Settings.Log.LogPath = *logPath
	}
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}

	// Each GetLog call builds a logger whose backend carries the level in
	// effect at that moment; this call does not change loggers that were
	// created before the level was chosen above.
	logging.GetLog()

	if *npsSecs != 0 {
		runNpsMeasurement(*fen, *npsSecs)
		return
	}

	if *perftDepth != 0 {
		var p movegen.Perft
		for d := 1; d <= *perftDepth; d++ {
			p.Run(*fen, d)
		}
		return
	}

	// Normal engine operation: hand control to the UCI loop until quit.
	u := uci.NewUciHandler()
	u.Loop()
}

// runNpsMeasurement searches the given position with a fixed move time and
// reports the sustained nodes-per-second rate.
func runNpsMeasurement(fen string, seconds int) {
	s := search.NewSearch()
	p, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("invalid fen %q: %v\n", fen, err)
		os.Exit(1)
	}
	sl := search.NewSearchLimits()
	sl.TimeControl = true
	sl.MoveTime = time.Duration(seconds) * time.Second
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	out.Println()
	out.Println("NPS : ", util.Nps(s.NodesVisited(), s.LastSearchResult().SearchTime))
}

func printVersionInfo() {
	out.Printf("Kestrel %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
