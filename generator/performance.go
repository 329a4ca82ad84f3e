package generator

import (
	"regexp"
	"strconv"

	"github.com/hupe1980/socialmesh/core"
)

var digitsPattern = regexp.MustCompile(`\d+`)

// ParsePerformance extracts a performance estimate from an unstructured
// engine response by taking the first two integers that appear in the text.
//
// This is a deliberately loose contract: the engine's answer format is not
// structured, so parsing is best-effort. A missing number defaults to 0 and
// every value is clamped into [0,100]. Callers must treat 0/0 as "no
// estimate", not as a prediction.
func ParsePerformance(s string) core.Performance {
	nums := digitsPattern.FindAllString(s, 2)
	var p core.Performance
	if len(nums) > 0 {
		p.ExpectedEngagement = clampScore(nums[0])
	}
	if len(nums) > 1 {
		p.ConfidenceScore = clampScore(nums[1])
	}
	return p
}

func clampScore(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		// The only failure mode for a digit string is overflow.
		return 100
	}
	if n > 100 {
		return 100
	}
	return n
}
