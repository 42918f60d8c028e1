package conway

import (
	"fmt"
	"strconv"
	"strings"
)

// Rule is a life-like birth/survival rule. Bit n is set when a cell with n
// live neighbors is born (Birth) or stays alive (Survive).
type Rule struct {
	Birth   uint16
	Survive uint16
}

// Life is the classic B3/S23 rule.
var Life = Rule{Birth: 1 << 3, Survive: 1<<2 | 1<<3}

// ParseRule accepts "B3/S23" notation and the older survival-first "23/3".
func ParseRule(s string) (Rule, error) {
	left, right, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "/")
	if !ok {
		return Rule{}, fmt.Errorf("conway: rule %q: missing '/'", s)
	}

	var birth, survive string
	switch {
	case strings.HasPrefix(left, "B") && strings.HasPrefix(right, "S"):
		birth, survive = left[1:], right[1:]
	case strings.HasPrefix(left, "S") && strings.HasPrefix(right, "B"):
		survive, birth = left[1:], right[1:]
	default:
		survive, birth = left, right
	}

	var r Rule
	var err error
	if r.Birth, err = digits(birth); err != nil {
		return Rule{}, fmt.Errorf("conway: rule %q: %w", s, err)
	}
	if r.Survive, err = digits(survive); err != nil {
		return Rule{}, fmt.Errorf("conway: rule %q: %w", s, err)
	}
	return r, nil
}

func digits(s string) (uint16, error) {
	var mask uint16
	for _, ch := range s {
		n, err := strconv.Atoi(string(ch))
		if err != nil {
			return 0, fmt.Errorf("bad neighbor count %q", ch)
		}
		mask |= 1 << n
	}
	return mask, nil
}

// Next returns whether a cell is alive in the next generation.
func (r Rule) Next(alive bool, neighbors int) bool {
	if neighbors < 0 || neighbors > 15 {
		return false
	}
	if alive {
		return r.Survive&(1<<neighbors) != 0
	}
	return r.Birth&(1<<neighbors) != 0
}

func (r Rule) String() string {
	return "B" + counts(r.Birth) + "/S" + counts(r.Survive)
}

func counts(mask uint16) string {
	var sb strings.Builder
	for n := 0; n < 10; n++ {
		if mask&(1<<n) != 0 {
			sb.WriteByte(byte('0' + n))
		}
	}
	return sb.String()
}
