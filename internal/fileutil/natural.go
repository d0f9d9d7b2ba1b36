package fileutil

// NaturalLess reports whether a orders before b under natural ordering.
// The strings are scanned as alternating digit and non-digit runs: digit
// runs compare numerically and non-digit bytes compare
// case-insensitively, so "frame2" sorts before "frame10".
func NaturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			// Consume both digit runs.
			startA, startB := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}

			numA := trimLeadingZeros(a[startA:i])
			numB := trimLeadingZeros(b[startB:j])

			// Shorter stripped run is the smaller number.
			if len(numA) != len(numB) {
				return len(numA) < len(numB)
			}
			if numA != numB {
				return numA < numB
			}
			// Equal values: fewer leading zeros sorts first.
			if (i - startA) != (j - startB) {
				return (i - startA) < (j - startB)
			}
			continue
		}

		la, lb := lowerByte(ca), lowerByte(cb)
		if la != lb {
			return la < lb
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func trimLeadingZeros(s string) string {
	k := 0
	for k < len(s)-1 && s[k] == '0' {
		k++
	}
	return s[k:]
}
