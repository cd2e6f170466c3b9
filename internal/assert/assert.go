//
// Corvid - UCI chess engine in GO
//
// MIT License
//
// Copyright (c) 2021-2024 The Corvid Chess Project
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

// Package assert is a helper to allow assert tests in a more standardized
// and simple manner. Internal contracts (piece ranges, square ranges,
// move shapes) are checked in debug builds and assumed to hold in
// release builds.
package assert

import (
	"fmt"
)

// DEBUG enables assertion evaluation. GO still evaluates the parameters
// of calls to Assert even when it is a no-op, so performance critical
// call sites wrap the call in "if assert.DEBUG { ... }" - the compiler
// eliminates the whole statement when DEBUG is a false constant.
const DEBUG = false

// Assert panics with the given message if the test is false and DEBUG is
// enabled.
func Assert(test bool, msg string, a ...interface{}) {
	if DEBUG && !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
