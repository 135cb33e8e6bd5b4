// Package intline converts between a comma separated line of integers and
// a slice of ints.
package intline

import (
	"fmt"
	"strconv"
	"strings"
)

const separator = ","

// ParseError is returned by Parse when a token of the line is not an integer.
type ParseError struct {
	// Pos is the zero based index of the offending token.
	Pos   int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value %q at position %d: %v", e.Token, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse splits line on commas and parses every token as a base 10 integer.
// Spaces around a token are ignored, an empty token is an error.
func Parse(line string) ([]int, error) {
	tokens := strings.Split(strings.TrimSpace(line), separator)
	s := make([]int, 0, len(tokens))
	for i, t := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return nil, &ParseError{
				Pos:   i,
				Token: t,
				Err:   err,
			}
		}
		s = append(s, v)
	}

	return s, nil
}

// Format joins the values with commas.
func Format(s []int) string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}
