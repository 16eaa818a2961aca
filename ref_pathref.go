package inferschema

import (
	"strconv"
	"strings"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// fieldPath returns the JSON Pointer segment for an object key.
// '~' -> '~0', '/' -> '~1' per RFC6901.
func fieldPath(key string) string { return "/" + pointerEscaper.Replace(key) }

// indexPath returns the JSON Pointer segment for an array index.
func indexPath(i int) string { return "/" + strconv.Itoa(i) }
