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

package testsuite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-chess/corvid/internal/config"
)

func init() {
	config.Setup()
	config.Settings.Search.TTSize = 16
}

const epdContent = `# small smoke suite
6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - bm Ra8; dm 1; id "mate in one";
3q3k/8/8/8/3Q4/8/8/3R3K w - - bm Qxd8; id "free queen";
`

func writeSuite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smoke.epd")
	assert.NoError(t, os.WriteFile(path, []byte(epdContent), 0o644))
	return path
}

func TestParseEpdLines(t *testing.T) {
	ts, err := NewTestSuite(writeSuite(t), 200*time.Millisecond, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(ts.Tests))
	assert.Equal(t, 1, ts.Tests[0].targetMoves.Len())
	assert.Equal(t, "a1a8", ts.Tests[0].targetMoves.Front().String())
	assert.Equal(t, "d4d8", ts.Tests[1].targetMoves.Front().String())
}

func TestRunSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping suite run in short mode")
	}
	ts, err := NewTestSuite(writeSuite(t), 500*time.Millisecond, 6)
	assert.NoError(t, err)
	ts.RunTests()
	assert.Equal(t, 2, ts.LastResult.Counter)
	assert.Equal(t, 2, ts.LastResult.SuccessCounter)
}

func TestMissingFile(t *testing.T) {
	_, err := NewTestSuite("./does-not-exist.epd", time.Second, 0)
	assert.Error(t, err)
}
