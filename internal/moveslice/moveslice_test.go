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

package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/corvid-chess/corvid/internal/types"
)

func TestPushPop(t *testing.T) {
	ms := NewMoveSlice(16)
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, MoveNone, ms.Front())
	assert.Equal(t, MoveNone, ms.Back())

	m1 := NewMove(SqE2, SqE4, PtEmpty)
	m2 := NewMove(SqD2, SqD4, PtEmpty)
	ms.PushBack(m1)
	ms.PushBack(m2)
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, m1, ms.Front())
	assert.Equal(t, m2, ms.Back())
	assert.Equal(t, m2, ms.PopBack())
	assert.Equal(t, 1, ms.Len())

	ms.Clear()
	assert.Equal(t, 0, ms.Len())
}

func TestSortIsByScoreDescendingAndStable(t *testing.T) {
	ms := NewMoveSlice(16)
	a := NewMove(SqA2, SqA3, PtEmpty).WithScore(10)
	b := NewMove(SqB2, SqB3, PtEmpty).WithScore(500)
	c := NewMove(SqC2, SqC3, PtEmpty).WithScore(-20)
	d := NewMove(SqD2, SqD3, PtEmpty).WithScore(500)
	ms.PushBack(a)
	ms.PushBack(b)
	ms.PushBack(c)
	ms.PushBack(d)
	ms.Sort()

	assert.Equal(t, b, ms.At(0))
	assert.Equal(t, d, ms.At(1)) // stable: b keeps its place before d
	assert.Equal(t, a, ms.At(2))
	assert.Equal(t, c, ms.At(3))
}

func TestReplace(t *testing.T) {
	head := NewMove(SqE2, SqE4, PtEmpty)
	tail := NewMoveSlice(4)
	tail.PushBack(NewMove(SqE7, SqE5, PtEmpty))
	tail.PushBack(NewMove(SqG1, SqF3, PtEmpty))

	pv := NewMoveSlice(8)
	pv.PushBack(NewMove(SqA2, SqA4, PtEmpty))
	pv.Replace(head, tail)

	assert.Equal(t, 3, pv.Len())
	assert.Equal(t, head, pv.Front())
	assert.Equal(t, "e2e4 e7e5 g1f3", pv.StringUci())
}

func TestClone(t *testing.T) {
	ms := NewMoveSlice(4)
	ms.PushBack(NewMove(SqE2, SqE4, PtEmpty))
	clone := ms.Clone()
	clone.Set(0, NewMove(SqD2, SqD4, PtEmpty))
	assert.NotEqual(t, ms.At(0), clone.At(0))
}
