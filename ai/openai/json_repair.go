// Copyright 2025 Veyra Labs
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


package openai

import "strings"

// repairJSON attempts to fix common JSON formatting issues in oracle
// responses before unmarshaling: unquoted object keys (`{name: "Go"}` and
// the half-quoted `{name": "Go"}` variant) and trailing commas before a
// closing bracket. Anything it cannot recognize passes through untouched.
func repairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 64)

	runes := []rune(s)
	inString := false
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inString {
			out.WriteRune(ch)
			if ch == '\\' && i+1 < len(runes) {
				out.WriteRune(runes[i+1])
				i++
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			out.WriteRune(ch)

		case ch == ',':
			// Drop the comma when only whitespace separates it from a
			// closing bracket.
			j := i + 1
			for j < len(runes) && isSpace(runes[j]) {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue
			}
			out.WriteRune(ch)

		case isKeyStart(runes, i):
			// Bare identifier in key position: quote it.
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			out.WriteByte('"')
			out.WriteString(string(runes[start:i]))
			out.WriteByte('"')
			// The half-quoted form `name":` already carries a closing
			// quote; consume it so it is not doubled.
			if i < len(runes) && runes[i] == '"' {
				i++
			}
			i-- // loop increment compensates

		default:
			out.WriteRune(ch)
		}
	}

	return out.String()
}

// isKeyStart reports whether position i begins a bare key: an identifier
// rune in key position (preceded by '{' or ',' modulo whitespace) and
// followed by ':' or '":'.
func isKeyStart(runes []rune, i int) bool {
	if !isIdentRune(runes[i]) {
		return false
	}

	// Look back for '{' or ',' skipping whitespace.
	j := i - 1
	for j >= 0 && isSpace(runes[j]) {
		j--
	}
	if j < 0 || (runes[j] != '{' && runes[j] != ',') {
		return false
	}

	// Look ahead for ':' or '":' after the identifier.
	k := i
	for k < len(runes) && isIdentRune(runes[k]) {
		k++
	}
	if k < len(runes) && runes[k] == '"' {
		k++
	}
	return k < len(runes) && runes[k] == ':'
}

func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
