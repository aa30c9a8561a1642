package domain

import "strconv"

// NumericCentury extracts a century number from free text such as
// "12th century", "1345 - 1390" or "9".
//
// Standalone numbers are maximal runs of ASCII digits. The first rule that
// matches wins:
//
//  1. the first two-digit number
//  2. a single one-digit number, when it is the only one
//  3. the first four-digit number read as a year, giving its leading two
//     digits plus one
//
// It reports false when nothing matches.
func NumericCentury(text string) (int, bool) {
	runs := digitRuns(text)

	if twos := runsOfLength(runs, 2); len(twos) > 0 {
		return atoi(twos[0])
	}
	if ones := runsOfLength(runs, 1); len(ones) == 1 {
		return atoi(ones[0])
	}
	if fours := runsOfLength(runs, 4); len(fours) > 0 {
		n, ok := atoi(fours[0][:2])
		if !ok {
			return 0, false
		}
		return n + 1, true
	}
	return 0, false
}

// NumericCenturyPtr is NumericCentury for optional fields.
func NumericCenturyPtr(text string) *int {
	n, ok := NumericCentury(text)
	if !ok {
		return nil
	}
	return &n
}

func digitRuns(text string) []string {
	var runs []string
	start := -1
	for i := 0; i < len(text); i++ {
		isDigit := text[i] >= '0' && text[i] <= '9'
		switch {
		case isDigit && start < 0:
			start = i
		case !isDigit && start >= 0:
			runs = append(runs, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, text[start:])
	}
	return runs
}

func runsOfLength(runs []string, n int) []string {
	var out []string
	for _, r := range runs {
		if len(r) == n {
			out = append(out, r)
		}
	}
	return out
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
