// seehuhn.de/go/ccm - estimate and apply colour correction matrices
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package lut

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/ccm/colorspace"
)

// Encode writes the table in the .cube text format.
func (c *Cube) Encode(w io.Writer) error {
	if c.Size < 2 || len(c.Data) != c.Size*c.Size*c.Size {
		return fmt.Errorf("%w: %d entries for size %d", ErrInvalidCube, len(c.Data), c.Size)
	}

	bw := bufio.NewWriter(w)
	if c.Title != "" {
		fmt.Fprintf(bw, "TITLE %q\n", c.Title)
	}
	fmt.Fprintf(bw, "LUT_3D_SIZE %d\n", c.Size)
	fmt.Fprintf(bw, "DOMAIN_MIN %s\n", formatVec(c.DomainMin))
	fmt.Fprintf(bw, "DOMAIN_MAX %s\n", formatVec(c.DomainMax))
	for _, v := range c.Data {
		bw.WriteString(formatVec(v))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func formatVec(v colorspace.Vec3) string {
	return strconv.FormatFloat(v[0], 'f', 6, 64) + " " +
		strconv.FormatFloat(v[1], 'f', 6, 64) + " " +
		strconv.FormatFloat(v[2], 'f', 6, 64)
}

// Decode reads a 3D table in the .cube text format.
// If no domain is given, the domain defaults to [0, 1]³.
func Decode(r io.Reader) (*Cube, error) {
	c := &Cube{
		DomainMax: colorspace.Vec3{1, 1, 1},
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fail := func(format string, args ...any) error {
			return fmt.Errorf("%w: line %d: %s", ErrInvalidCube, lineNo, fmt.Sprintf(format, args...))
		}

		keyword, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch keyword {
		case "TITLE":
			title, err := strconv.Unquote(rest)
			if err != nil {
				title = strings.Trim(rest, `"`)
			}
			c.Title = title
			continue
		case "LUT_3D_SIZE":
			if c.Size != 0 {
				return nil, fail("duplicate LUT_3D_SIZE")
			}
			n, err := strconv.Atoi(rest)
			if err != nil || n < 2 || n > MaxSize {
				return nil, fail("invalid size %q", rest)
			}
			c.Size = n
			continue
		case "LUT_1D_SIZE":
			return nil, fail("1D tables are not supported")
		case "DOMAIN_MIN", "DOMAIN_MAX":
			v, err := parseVec(rest)
			if err != nil {
				return nil, fail("%s: %v", keyword, err)
			}
			if keyword == "DOMAIN_MIN" {
				c.DomainMin = v
			} else {
				c.DomainMax = v
			}
			continue
		}

		if c.Size == 0 {
			return nil, fail("data before LUT_3D_SIZE")
		}
		if len(c.Data) == c.Size*c.Size*c.Size {
			return nil, fail("too many entries")
		}
		v, err := parseVec(line)
		if err != nil {
			return nil, fail("%v", err)
		}
		c.Data = append(c.Data, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if c.Size == 0 {
		return nil, fmt.Errorf("%w: missing LUT_3D_SIZE", ErrInvalidCube)
	}
	if want := c.Size * c.Size * c.Size; len(c.Data) != want {
		return nil, fmt.Errorf("%w: found %d entries, want %d", ErrInvalidCube, len(c.Data), want)
	}
	for i := range 3 {
		if !(c.DomainMin[i] < c.DomainMax[i]) {
			return nil, fmt.Errorf("%w: empty domain", ErrInvalidCube)
		}
	}
	return c, nil
}

func parseVec(s string) (colorspace.Vec3, error) {
	var v colorspace.Vec3
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return v, fmt.Errorf("expected 3 numbers, found %d", len(fields))
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, fmt.Errorf("invalid number %q", f)
		}
		v[i] = x
	}
	return v, nil
}
