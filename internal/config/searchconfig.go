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

package config

// searchConfiguration is a data structure to hold the configuration of an
// instance of a search.
type searchConfiguration struct {
	// Quiescence search
	UseQuiescence bool
	UseSEE        bool

	// Move ordering
	UseKiller         bool
	UseHistoryCounter bool

	// Transposition Table
	UseTT     bool
	TTSize    int
	UseTTMove bool

	// Prunings and reductions
	UseMDP      bool
	UseRFP      bool
	UseNullMove bool
	UseIIR      bool
	UseLmr      bool

	// Extensions of search depth
	UseExt bool

	// Aspiration windows around the previous iteration's score
	UseAspiration bool
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.UseQuiescence = true
	Settings.Search.UseSEE = true

	Settings.Search.UseKiller = true
	Settings.Search.UseHistoryCounter = true

	Settings.Search.UseTT = true
	Settings.Search.TTSize = 256
	Settings.Search.UseTTMove = true

	Settings.Search.UseMDP = true
	Settings.Search.UseRFP = true
	Settings.Search.UseNullMove = true
	Settings.Search.UseIIR = true
	Settings.Search.UseLmr = true

	Settings.Search.UseExt = true

	Settings.Search.UseAspiration = true
}
