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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsBeforeSetup(t *testing.T) {
	// package init applies the defaults even without a config file
	assert.True(t, Settings.Search.UseQuiescence)
	assert.True(t, Settings.Search.UseTT)
	assert.Greater(t, Settings.Search.TTSize, 0)
	assert.True(t, Settings.Eval.UsePawnEval)
	assert.Equal(t, int16(14), Settings.Eval.Tempo)
}

func TestSetupWithoutFileKeepsDefaults(t *testing.T) {
	ConfFile = "./does-not-exist.toml"
	Setup()
	assert.True(t, Settings.Search.UseNullMove)
	assert.NotEmpty(t, Settings.Log.LogLvl)
}

func TestLogLevels(t *testing.T) {
	assert.Equal(t, 5, LogLevels["debug"])
	assert.Equal(t, 0, LogLevels["critical"])
}

func TestString(t *testing.T) {
	s := Settings.String()
	assert.Contains(t, s, "UseQuiescence")
	assert.Contains(t, s, "Tempo")
}
