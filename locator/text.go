/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package locator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"golang.org/x/net/html/charset"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// A @charset rule is only honored as the very first bytes of a
	// stylesheet, in exactly this form.
	charsetRule = regexp.MustCompile(`^@charset "([^"]*)";`)
)

// ReadText reads the resource at uri and returns its content as UTF-8.
//
// A leading byte order mark is dropped. A leading @charset rule naming a
// known non-UTF-8 encoding causes the content to be transcoded and the rule
// to be removed, since the rule would be meaningless once the stylesheet is
// concatenated into a UTF-8 bundle. Unknown labels leave the bytes untouched.
func ReadText(ctx context.Context, l Locator, uri string) (string, error) {
	rc, err := l.Locate(ctx, uri)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", &NotFoundError{URI: uri, Err: err}
	}
	return decode(uri, data)
}

func decode(uri string, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	m := charsetRule.FindSubmatch(data)
	if m == nil {
		return string(data), nil
	}
	enc, name := charset.Lookup(string(m[1]))
	if enc == nil || name == "utf-8" {
		return string(data), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data[len(m[0]):])
	if err != nil {
		return "", &NotFoundError{URI: uri, Err: fmt.Errorf("decoding %s: %w", name, err)}
	}
	return string(decoded), nil
}

// transcode converts data from the encoding named by a Content-Type charset
// label to UTF-8. The transport label overrides any @charset rule, which is
// removed. A byte order mark overrides both.
func transcode(uri, label string, data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return data, nil
	}
	if name != "utf-8" {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s as %s: %w", uri, name, err)
		}
		data = decoded
	}
	if m := charsetRule.FindIndex(data); m != nil {
		data = data[m[1]:]
	}
	return data, nil
}
