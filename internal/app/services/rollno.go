package services

import (
	"fmt"
	"strings"
)

// SynthesizeRollNo renders a roll number in the fixed platform format:
// 4-digit institution code, up to 2 uppercase letters from the institution
// name, 2-digit year, 4-digit sequence number, no separators.
//
// The function is pure and performs no I/O. It is collision-free only as
// long as sequence numbers are distinct per (institution, year); drawing
// distinct numbers is the allocator's job, not this function's.
func SynthesizeRollNo(code int, institutionName, yearYY string, seq int) string {
	return RollNoPrefix(code, institutionName, yearYY) + fmt.Sprintf("%04d", seq)
}

// RollNoPrefix renders the institution/year part of a roll number: the
// 4-digit code, the name tag and the 2-digit year. The reconciler matches
// persisted roll numbers against this prefix.
func RollNoPrefix(code int, institutionName, yearYY string) string {
	yy := yearYY
	for len(yy) < 2 {
		yy = "0" + yy
	}
	return fmt.Sprintf("%04d%s%s", code, nameTag(institutionName), yy)
}

// nameTag keeps only letters of the institution name, uppercases them and
// takes the first two. Names with fewer than two letters yield a shorter
// tag; that is accepted as-is.
func nameTag(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
			if b.Len() == 2 {
				break
			}
		}
	}
	return strings.ToUpper(b.String())
}
