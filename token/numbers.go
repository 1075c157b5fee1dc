package token

import (
	"strconv"
	"strings"
)

// ParseFloat parses a card numeric field. Besides Go float syntax the
// legacy shorthand exponent is accepted: "1.0-3" means 1.0e-3 and
// "6.5+2" means 6.5e+2 (the 'e' is elided and the sign carries the
// exponent).
func ParseFloat(word string) (float64, error) {
	f, err := strconv.ParseFloat(word, 64)
	if err == nil {
		return f, nil
	}
	expanded, ok := expandShorthandExp(word)
	if !ok {
		return 0, ErrNumber
	}
	f, err = strconv.ParseFloat(expanded, 64)
	if err != nil {
		return 0, ErrNumber
	}
	return f, nil
}

func expandShorthandExp(word string) (string, bool) {
	// the sign introducing the exponent can not be the leading sign
	// of the mantissa, so search from index 1.
	if len(word) < 2 {
		return "", false
	}
	i := strings.LastIndexAny(word[1:], "+-")
	if i < 0 {
		return "", false
	}
	i++
	before := word[i-1]
	if before == 'e' || before == 'E' {
		return "", false
	}
	return word[:i] + "e" + word[i:], true
}
