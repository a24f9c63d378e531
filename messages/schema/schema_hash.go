// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package schema

import (
	"crypto/md5"
	"encoding/hex"
)

// Hash returns the lowercase hex MD5 digest of the concatenated parts.
//
// Enumeration fingerprints hash the member names in order, structure
// fingerprints hash the fingerprints of their field types in order. Names
// of the hashed type and its fields do not contribute.
//
// Parts are concatenated without a separator, so ["ab", "c"] and ["a", "bc"]
// hash equal. Fingerprints embedded in existing echolib bindings were
// computed this way; adding a separator would change every fingerprint.
func Hash(parts ...[]byte) string {
	h := md5.New()
	for _, part := range parts {
		h.Write(part)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashStrings(parts []string) string {
	buf := make([][]byte, 0, len(parts))
	for _, part := range parts {
		buf = append(buf, []byte(part))
	}
	return Hash(buf...)
}

func enumHash(members []string) string {
	return hashStrings(members)
}

func structHash(fields []*Field) string {
	hashes := make([]string, 0, len(fields))
	for _, field := range fields {
		hashes = append(hashes, field.Type.Hash())
	}
	return hashStrings(hashes)
}
