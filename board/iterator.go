// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package board

// Iterator stands in for the background reader a real board runs. On a
// simulated line every reply is queued synchronously, so Start and Stop only
// flip a flag and tests call Board.Iterate themselves.
type Iterator struct {
	board   *Board
	running bool
}

// NewIterator returns an iterator for b.
func NewIterator(b *Board) *Iterator {
	return &Iterator{board: b}
}

// Start marks the iterator running.
func (it *Iterator) Start() { it.running = true }

// Stop marks the iterator stopped.
func (it *Iterator) Stop() { it.running = false }

// Running reports whether Start was called without a later Stop.
func (it *Iterator) Running() bool { return it.running }

// Board returns the board the iterator belongs to.
func (it *Iterator) Board() *Board { return it.board }
