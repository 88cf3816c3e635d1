/*
File    : trill/types/punishment.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Punishment scores break ties among multiple successful overload
// resolutions (spec §4.5, §4.6, §9). A flat enum of penalty kinds with a
// lexicographic Score total: exact matches first, then literal-typed
// matches, then existential widening last.
package types

// PenaltyKind is one category of non-preferred solving step.
type PenaltyKind int

const (
	AnyPromotion PenaltyKind = iota
	ExistentialPromotion
	GenericPromotion
	NumericLiteralPromotion
	StringLiteralPromotion
	numPenaltyKinds
)

// Punishment tallies penalties by kind. The zero value is "no penalties",
// i.e. an exact-match solution.
type Punishment struct {
	counts [numPenaltyKinds]int
}

// Add records one occurrence of kind.
func (p *Punishment) Add(kind PenaltyKind) {
	p.counts[kind]++
}

// Merge folds another punishment's counts into p, used when a solver
// composes sub-solutions (e.g. solving each argument of a call).
func (p *Punishment) Merge(other Punishment) {
	for i := range p.counts {
		p.counts[i] += other.counts[i]
	}
}

// Less reports whether p is strictly preferred to other: lexicographic
// comparison over categories in declared order (AnyPromotion compared
// first, StringLiteralPromotion last), so that any difference in a more
// "exact-preferring" category decides the comparison before a later one
// is even considered.
func (p Punishment) Less(other Punishment) bool {
	for i := range p.counts {
		if p.counts[i] != other.counts[i] {
			return p.counts[i] < other.counts[i]
		}
	}
	return false
}

// Equal reports whether p and other carry identical penalty tallies —
// the condition overload resolution uses to detect a genuine tie.
func (p Punishment) Equal(other Punishment) bool {
	return p.counts == other.counts
}

// Total returns the sum of all penalty counts, used only for debug
// rendering — ties are broken by Less/Equal, never by this sum alone.
func (p Punishment) Total() int {
	total := 0
	for _, c := range p.counts {
		total += c
	}
	return total
}
