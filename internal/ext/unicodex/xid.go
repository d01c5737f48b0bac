// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unicodex

import (
	"unicode"
	"unicode/utf8"
)

// IsXIDStart returns whether r has the XID_Start property.
func IsXIDStart(r rune) bool {
	// ASCII fast path.
	if r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') {
		return true
	}

	return unicode.In(r,
		unicode.Letter,
		unicode.Nl,
		unicode.Other_ID_Start,
	) && !unicode.In(r,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}

// IsXIDContinue returns whether r has the XID_Continue property.
func IsXIDContinue(r rune) bool {
	// ASCII fast path.
	if r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') {
		return true
	}

	return unicode.In(r,
		unicode.Letter,
		unicode.Cf,
		unicode.Mn,
		unicode.Mc,
		unicode.Nl,
		unicode.Nd,
		unicode.Pc,
		unicode.Other_ID_Start,
	) && !unicode.In(r,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}

// IdentPrefix returns the length in bytes of the longest identifier at the
// start of s, or zero if s does not start with one.
func IdentPrefix(s string) int {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || !IsXIDStart(r) {
		return 0
	}

	end := n
	for end < len(s) {
		r, n := utf8.DecodeRuneInString(s[end:])
		if !IsXIDContinue(r) {
			break
		}
		end += n
	}
	return end
}
