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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/kvchess/kestrel/internal/types"
)

func TestRewardAndPenalizeQuiet(t *testing.T) {
	h := NewHistory()
	best := NewMove(SqE2, SqE4, FlagDoublePawnPush)
	tried := NewMove(SqG1, SqF3, FlagQuiet)

	h.RewardQuiet(White, best, 4)
	h.PenalizeQuiet(White, tried, 4)

	assert.Greater(t, h.QuietScore(White, best), int32(0))
	assert.Less(t, h.QuietScore(White, tried), int32(0))
	// the other color's table is untouched
	assert.Equal(t, int32(0), h.QuietScore(Black, best))
}

func TestQuietGravityConverges(t *testing.T) {
	h := NewHistory()
	m := NewMove(SqG1, SqF3, FlagQuiet)

	h.RewardQuiet(White, m, 10)
	first := h.QuietScore(White, m)
	h.RewardQuiet(White, m, 10)
	gain := h.QuietScore(White, m) - first

	// the second identical reward must add less than the first did
	assert.Greater(t, first, int32(0))
	assert.Less(t, gain, first)
}

func TestCaptureScoreGravity(t *testing.T) {
	h := NewHistory()
	m := NewMove(SqE4, SqD5, FlagCapture)

	h.RewardCapture(WhitePawn, m, Pawn, 6)
	first := h.CaptureScore(WhitePawn, m, Pawn)
	assert.Greater(t, first, int32(0))

	h.PenalizeCapture(WhitePawn, m, Pawn, 6)
	second := h.CaptureScore(WhitePawn, m, Pawn)
	assert.Less(t, second, first)
}

func TestCounterMoveRoundTrip(t *testing.T) {
	h := NewHistory()
	prev := NewMove(SqE7, SqE5, FlagDoublePawnPush)
	counter := NewMove(SqG1, SqF3, FlagQuiet)

	assert.Equal(t, MoveNone, h.CounterMove(prev))
	h.AddCounterMove(prev, counter)
	assert.Equal(t, counter, h.CounterMove(prev))

	// MoveNone as the previous move is inert on both paths
	h.AddCounterMove(MoveNone, counter)
	assert.Equal(t, MoveNone, h.CounterMove(MoveNone))
}

func TestClearResetsAllTables(t *testing.T) {
	h := NewHistory()
	quiet := NewMove(SqG1, SqF3, FlagQuiet)
	h.RewardQuiet(White, quiet, 4)
	h.AddCounterMove(NewMove(SqE7, SqE5, FlagDoublePawnPush), quiet)

	h.Clear()

	assert.Equal(t, int32(0), h.QuietScore(White, quiet))
	assert.Equal(t, MoveNone, h.CounterMove(NewMove(SqE7, SqE5, FlagDoublePawnPush)))
}
