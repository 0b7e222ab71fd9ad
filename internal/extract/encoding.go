//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package extract

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// decode strips a UTF-8 BOM if present and converts the input to UTF-8.
// Input that is not valid UTF-8 is assumed to be Latin-1, which real-world
// exports of this dataset occasionally are.
func decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, bomUTF8)

	if utf8.Valid(data) {
		return data, nil
	}
	return charmap.ISO8859_1.NewDecoder().Bytes(data)
}
