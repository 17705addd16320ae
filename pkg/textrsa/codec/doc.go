// Package codec converts messages to sequences of integers and back.
//
// The default encoding yields one integer per Unicode code point, so
// ToIntegers("Añ") is [65 241]. The byte encoding yields one integer per UTF-8
// byte, which is the same as the code point encoding for ASCII text.
//
// Decoding is strict by default: an integer that is not a valid character code
// fails with textrsa.ErrCodePointRange. The lossy mode truncates such
// integers to their low 8 bits instead, which never fails and matches how
// C-string based implementations of this scheme print their output.
package codec
