package vdom

import (
	"sort"
	"strings"
)

// attr creates an attribute with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the element id.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. Multiple classes are joined with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the raw style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Style builds a style attribute from property/value pairs.
// Declarations are emitted in property order so output is deterministic.
func Style(decls map[string]string) Attr {
	if len(decls) == 0 {
		return Attr{}
	}
	props := make([]string, 0, len(decls))
	for p := range decls {
		props = append(props, p)
	}
	sort.Strings(props)

	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(decls[p])
		b.WriteByte(';')
	}
	return attr("style", b.String())
}

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the ARIA role.
func Role(role string) Attr { return attr("role", role) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// Charset sets the charset attribute (used on <meta>).
func Charset(charset string) Attr { return attr("charset", charset) }
