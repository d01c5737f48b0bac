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

package report

// styleSheet is the colors used for pretty-rendering diagnostics.
type styleSheet struct {
	reset string
	// Normal colors.
	nError, nWarning, nRemark, nAccent string
	// Bold colors.
	bError, bWarning, bRemark, bAccent string
}

func (r Renderer) colors() styleSheet {
	if !r.Colorize {
		return styleSheet{}
	}

	return styleSheet{
		reset: "\033[0m",
		// Red.
		nError: "\033[0;31m",
		bError: "\033[1;31m",

		// Yellow.
		nWarning: "\033[0;33m",
		bWarning: "\033[1;33m",

		// Cyan.
		nRemark: "\033[0;36m",
		bRemark: "\033[1;36m",

		// Blue. Used for "accents" such as non-primary span underlines and
		// line numbers.
		nAccent: "\033[0;34m",
		bAccent: "\033[1;34m",
	}
}

// color returns the escape sequence for the non-bold color to use for
// the given level.
func (c styleSheet) color(l Level) string {
	switch l {
	case Error:
		return c.nError
	case Warning:
		return c.nWarning
	case Remark:
		return c.nRemark
	case noteLevel:
		return c.nAccent
	default:
		return ""
	}
}

// bold returns the escape sequence for the bold color to use for
// the given level.
func (c styleSheet) bold(l Level) string {
	switch l {
	case Error:
		return c.bError
	case Warning:
		return c.bWarning
	case Remark:
		return c.bRemark
	case noteLevel:
		return c.bAccent
	default:
		return ""
	}
}
