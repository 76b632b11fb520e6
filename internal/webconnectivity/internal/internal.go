// Package internal contains internal helpers for webconnectivity.
package internal

import "fmt"

// StringPointerToString converts a string pointer to a string. When the
// pointer is nil, the return value is the string "nil".
func StringPointerToString(v *string) (out string) {
	out = "nil"
	if v != nil {
		out = fmt.Sprintf("%+v", *v)
	}
	return
}

// BoolPointerToString is like StringPointerToString but for bool.
func BoolPointerToString(v *bool) (out string) {
	out = "nil"
	if v != nil {
		out = fmt.Sprintf("%+v", *v)
	}
	return
}
