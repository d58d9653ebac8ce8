// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// Score is zero when the pattern does not match. Positions are rune
// indices into the text, ascending.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 matcher case-insensitively. Both sides are
// lowercased so an all-caps text still matches a lowercase pattern.
// An empty pattern matches nothing. slab may be nil.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	chars := util.ToChars([]byte(strings.ToLower(text)))
	lowered := []rune(strings.ToLower(string(pattern)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}
	var sorted []int
	if positions != nil {
		sorted = append(sorted, (*positions)...)
		sort.Ints(sorted)
	}
	return FuzzyResult{Score: result.Score, Positions: sorted}
}
