//
// Kestrel - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 Kestrel contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package logging is a thin helper over "github.com/op/go-logging" that
// preconfigures a backend and format so every package can get a ready
// logger in one line instead of repeating the backend/formatter
// boilerplate.
package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"

	"github.com/kvchess/kestrel/internal/config"
)

var (
	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
	)
	uciFormat = logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)

	uciLogFile     *os.File
	uciLogFilePath string

	searchLogFile     *os.File
	searchLogFilePath string
)

func init() {
	programName, _ := os.Executable()
	exePath := filepath.Dir(programName)
	exeName := strings.TrimSuffix(filepath.Base(programName), ".exe")
	uciLogFilePath = exePath + "/../logs/" + exeName + "_uci.log"
	searchLogFilePath = exePath + "/../logs/" + exeName + "_search.log"
}

// GetLog returns a Logger, configured with the standard stdout backend
// and the engine's log level from config.Settings. An optional name
// picks the logger's module name (for go-logging's per-module level
// filter); it defaults to "log".
func GetLog(name ...string) *logging.Logger {
	l := logging.MustGetLogger(loggerName(name, "log"))
	backend := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.LogLevel), "")
	l.SetBackend(leveled)
	return l
}

func loggerName(name []string, fallback string) string {
	if len(name) > 0 && name[0] != "" {
		return name[0]
	}
	return fallback
}

// GetTestLog returns a Logger configured at config.TestLogLevel, for use
// in _test.go files where the standard/search levels are too quiet.
func GetTestLog(name ...string) *logging.Logger {
	l := logging.MustGetLogger(loggerName(name, "test"))
	backend := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.TestLogLevel), "")
	l.SetBackend(leveled)
	return l
}

// GetSearchTraceLog returns a Logger for the search's per-node trace
// output, mirrored to stdout (at the configured search log level) and,
// when the log directory is writable, to a file next to the executable.
func GetSearchTraceLog() *logging.Logger {
	l := logging.MustGetLogger("search")
	backend1 := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted1 := logging.NewBackendFormatter(backend1, standardFormat)
	level1 := logging.AddModuleLevel(formatted1)
	level1.SetLevel(logging.Level(config.SearchLogLevel), "")

	var err error
	searchLogFile, err = os.OpenFile(searchLogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		l.SetBackend(level1)
		return l
	}
	backend2 := logging.NewLogBackend(searchLogFile, "", log.Lmsgprefix)
	formatted2 := logging.NewBackendFormatter(backend2, standardFormat)
	level2 := logging.AddModuleLevel(formatted2)
	level2.SetLevel(logging.DEBUG, "")

	multi := logging.SetBackend(level1, level2)
	l.SetBackend(multi)
	return l
}

// GetUciLog returns a Logger that mirrors every UCI protocol line to
// stdout and, when the log directory is writable, to a log file next to
// the executable - useful for replaying a GUI session after the fact.
func GetUciLog() *logging.Logger {
	l := logging.MustGetLogger("UCI")
	backend1 := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted1 := logging.NewBackendFormatter(backend1, uciFormat)
	level1 := logging.AddModuleLevel(formatted1)
	level1.SetLevel(logging.DEBUG, "")

	var err error
	uciLogFile, err = os.OpenFile(uciLogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		l.SetBackend(level1)
		return l
	}
	backend2 := logging.NewLogBackend(uciLogFile, "", log.Lmsgprefix)
	formatted2 := logging.NewBackendFormatter(backend2, uciFormat)
	level2 := logging.AddModuleLevel(formatted2)
	level2.SetLevel(logging.DEBUG, "")

	multi := logging.SetBackend(level1, level2)
	l.SetBackend(multi)
	return l
}
