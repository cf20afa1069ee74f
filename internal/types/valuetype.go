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

package types

// ValueType tags a stored search value as an exact score or a bound, the
// way a transposition table entry records whether a cutoff clipped the
// true value.
type ValueType int8

const (
	Vnone ValueType = 0
	EXACT ValueType = 1
	ALPHA ValueType = 2 // upper bound
	BETA  ValueType = 3 // lower bound

	vlength int = 4
)

// IsValid reports whether vt is one of the defined ValueType constants.
func (vt ValueType) IsValid() bool {
	return vt >= 0 && int(vt) < vlength
}

var valueTypeToString = [vlength]string{"NoneValue", "ExactValue", "AlphaValue", "BetaValue"}

func (vt ValueType) String() string {
	return valueTypeToString[vt]
}
