// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketcode derives the short, shareable code printed on a
// keepsake ticket.
//
// The derivation is a 31-multiplier string hash over UTF-16 code
// units with wrapping 32-bit signed arithmetic, rendered in upper-case
// base 36. Codes produced here are byte-identical to the ones the
// browser edition of the ticket page produced for the same input, so
// the fold must never change: existing cards and test fixtures depend
// on it.
package ticketcode

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// separator joins the name parts and the event tag before hashing.
const separator = "|"

// Derive returns the code for a name under an event tag. It never
// fails: any input, including empty strings, yields a code.
//
// firstName and lastName are hashed exactly as given. Callers that
// trim or upper-case names must do so before calling Derive.
func Derive(firstName, lastName, eventTag string) string {
	input := firstName + separator + lastName + separator + eventTag

	var accumulator int32
	for _, unit := range utf16.Encode([]rune(input)) {
		accumulator = accumulator<<5 - accumulator + int32(unit)
	}
	return strings.ToUpper(strconv.FormatUint(uint64(uint32(accumulator)), 36))
}

// TicketID returns prefix followed by the derived code.
func TicketID(prefix, firstName, lastName, eventTag string) string {
	return prefix + Derive(firstName, lastName, eventTag)
}

// Valid reports whether code is a non-empty run of 0-9 and A-Z, the
// only shape Derive produces.
func Valid(code string) bool {
	if code == "" {
		return false
	}
	for index := 0; index < len(code); index++ {
		character := code[index]
		if (character < '0' || character > '9') && (character < 'A' || character > 'Z') {
			return false
		}
	}
	return true
}
