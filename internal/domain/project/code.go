package project

import (
	"fmt"
	"regexp"
	"strconv"
)

// CodePrefix is the fixed prefix of every project code
const CodePrefix = "PRJ-"

var codePattern = regexp.MustCompile(`^PRJ-(\d+)$`)

// NextCode returns the next sequential project code given the set of codes
// already in use. The numeric suffix is compared as an integer, not as a
// string: "PRJ-1000" sorts after "PRJ-999". Codes that do not match the
// pattern are ignored. The suffix is zero-padded to at least three digits
// and grows beyond that without truncation, so numeric ordering is kept
// for the next scan as well.
func NextCode(existing []string) string {
	max := 0
	for _, code := range existing {
		m := codePattern.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", CodePrefix, max+1)
}
