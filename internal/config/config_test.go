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

package config

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// make tests run in the projects root directory.
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestSetupAppliesDefaults(t *testing.T) {
	Setup()

	// Setup without a config file must leave the compiled-in defaults in
	// place rather than zeroing them
	assert.True(t, Settings.Search.UseTT)
	assert.Greater(t, Settings.Search.TTSize, 0)
	assert.Greater(t, Settings.Eval.PawnCacheSize, 0)
	assert.NotEmpty(t, Settings.Log.LogLvl)
}

func TestSetupIsIdempotent(t *testing.T) {
	Setup()
	ttSize := Settings.Search.TTSize
	Setup()
	assert.Equal(t, ttSize, Settings.Search.TTSize)
}

func TestSettingsString(t *testing.T) {
	Setup()
	s := Settings.String()
	// the reflective dump names each sub-config section
	assert.Contains(t, s, "Search")
	assert.Contains(t, s, "Eval")
	assert.Contains(t, s, "Log")
}
