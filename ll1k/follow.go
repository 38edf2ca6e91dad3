package ll1k

import (
	"github.com/shadowCow/llkgen/grammar"
)

const (
	maxPermutationIterations = 4000
	maxFixpointIterations    = 500
)

// FollowSet is the per-(owner, follow) record from spec.md §3: completes
// holds terminal sequences of length exactly k that are fully resolved;
// additional holds shorter sequences: resolved underflow in a complete set,
// and in a partial set the prefixes still awaiting a contribution from
// Follow's own FOLLOW set.
type FollowSet struct {
	Owner      string
	Follow     string
	Completes  map[string]grammar.SubProduction
	Additional map[string]grammar.SubProduction
	IsComplete bool
	Changed    bool
}

func newFollowSet(owner, follow string, isComplete bool) *FollowSet {
	return &FollowSet{
		Owner:      owner,
		Follow:     follow,
		Completes:  make(map[string]grammar.SubProduction),
		Additional: make(map[string]grammar.SubProduction),
		IsComplete: isComplete,
	}
}

// CompleteFollowSet builds a FollowSet with no outstanding dependency: every
// sequence is either already at length k (completes) or a resolved
// underflow (additional).
func CompleteFollowSet(seqs []grammar.SubProduction, owner string, k int) *FollowSet {
	fs := newFollowSet(owner, owner, true)
	for _, s := range seqs {
		fs.store(s, k)
	}
	return fs
}

// PartialFollowSet builds a FollowSet that still needs contributions from
// FOLLOW(follow) to reach length k.
func PartialFollowSet(seqs []grammar.SubProduction, owner string, k int, follow string) *FollowSet {
	fs := newFollowSet(owner, follow, false)
	for _, s := range seqs {
		fs.store(s, k)
	}
	return fs
}

func (fs *FollowSet) store(s grammar.SubProduction, k int) {
	norm := s.Normalized()
	key := norm.Key()
	if len(norm) >= k {
		fs.Completes[key] = norm
	} else {
		fs.Additional[key] = norm
	}
}

// Append merges contributions from other (the FollowSet of fs.Follow) into
// fs, per spec.md §4.3's append semantics: every stored prefix in fs is
// extended by every sequence in other, truncated to k; results reaching k
// migrate to completes.
func (fs *FollowSet) Append(other *FollowSet, k int) {
	if fs.IsComplete {
		return
	}
	added := false

	var otherSeqs []grammar.SubProduction
	for _, s := range other.Completes {
		otherSeqs = append(otherSeqs, s)
	}
	for _, s := range other.Additional {
		otherSeqs = append(otherSeqs, s)
	}

	var prefixes []grammar.SubProduction
	for _, p := range fs.Additional {
		prefixes = append(prefixes, p)
	}

	for _, prefix := range prefixes {
		for _, s := range otherSeqs {
			combined := prefix.Concat(s)
			if len(combined) > k {
				combined = combined[:k]
			}
			key := combined.Key()
			if len(combined) == k {
				if _, exists := fs.Completes[key]; !exists {
					fs.Completes[key] = combined
					added = true
				}
			} else {
				if _, exists := fs.Additional[key]; !exists {
					fs.Additional[key] = combined
					added = true
				}
			}
		}
	}

	if added {
		fs.Changed = true
	}
	if other.IsComplete {
		// Nothing further can ever arrive once the sole dependency is
		// itself fully resolved.
		fs.IsComplete = true
		fs.Changed = true
	}
}

// Upgrade joins two FollowSets describing the same (owner, follow) pair,
// used by the driver to flatten per-production FollowSets into one set
// per owner.
func Upgrade(a, b *FollowSet) *FollowSet {
	out := newFollowSet(a.Owner, a.Follow, a.IsComplete || b.IsComplete)
	for k, v := range a.Completes {
		out.Completes[k] = v
	}
	for k, v := range b.Completes {
		out.Completes[k] = v
	}
	for k, v := range a.Additional {
		out.Additional[k] = v
	}
	for k, v := range b.Additional {
		out.Additional[k] = v
	}
	return out
}

func fiArgFromSymbol(sym grammar.Symbol) fiArg {
	if sym.IsNonterm() {
		return fiNonterm(sym.Name)
	}
	return fiSeq(grammar.SubProduction{sym})
}

// cartesianConcat combines one candidate-SubProduction list per position
// into the full set of concatenated combinations. A position with no
// candidates drops the whole permutation silently, matching GetExact's
// "unresolved branches are dropped" convention.
func cartesianConcat(lists [][]grammar.SubProduction) []grammar.SubProduction {
	acc := []grammar.SubProduction{{}}
	for _, list := range lists {
		if len(list) == 0 {
			return nil
		}
		next := make([]grammar.SubProduction, 0, len(acc)*len(list))
		for _, a := range acc {
			for _, b := range list {
				next = append(next, a.Concat(b))
			}
		}
		acc = next
	}
	return acc
}

// kfollowPermutations implements spec.md §4.3's permutation enumeration
// for one occurrence of owner at rhs position base-1 in prod.
func (e *Engine) kfollowPermutations(prod grammar.Production, base int, k int, owner string) ([]*FollowSet, error) {
	rhsAfter := prod.RHS[base:]
	m := len(rhsAfter)
	if m == 0 {
		return []*FollowSet{PartialFollowSet([]grammar.SubProduction{{}}, owner, k, prod.LHS)}, nil
	}

	var out []*FollowSet
	iterations := 0

	var recurse func(pos int, assigned []int, sum int) error
	recurse = func(pos int, assigned []int, sum int) error {
		iterations++
		if iterations > maxPermutationIterations {
			return &EnumerationOverflowError{Production: prod, Iterations: iterations}
		}
		if pos == m {
			if sum == k {
				out = append(out, e.resolveSaturated(prod, rhsAfter, assigned, k, owner))
			} else {
				out = append(out, e.resolvePartial(rhsAfter, assigned, k, owner, prod.LHS))
			}
			return nil
		}
		remaining := k - sum
		for n := 0; n <= remaining; n++ {
			next := append(append([]int{}, assigned...), n)
			if err := recurse(pos+1, next, sum+n); err != nil {
				return err
			}
		}
		return nil
	}

	if err := recurse(0, nil, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveSaturated handles the Σn_i == k branch: every position resolves to
// an exact-length derivation except the last non-zero position, which may
// underflow since nothing downstream needs more (spec.md §4.3).
func (e *Engine) resolveSaturated(prod grammar.Production, rhsAfter grammar.SubProduction, assigned []int, k int, owner string) *FollowSet {
	lastNonZero := -1
	for i, n := range assigned {
		if n > 0 {
			lastNonZero = i
		}
	}

	perPos := make([][]grammar.SubProduction, len(assigned))
	for i, n := range assigned {
		sym := rhsAfter[i]
		if i == lastNonZero {
			union := UnionAll(e.Fi(fiArgFromSymbol(sym), n, true))
			// a pure-ε member contributes nothing at this position and must
			// not be carried into the combo below, or the flattened
			// FollowSet picks up a spurious ε (or under-length) entry.
			for _, sp := range union.Members() {
				if len(sp.Normalized()) == 0 {
					continue
				}
				perPos[i] = append(perPos[i], sp)
			}
		} else {
			perPos[i] = e.G.GetExact(sym, n)
		}
	}
	combos := cartesianConcat(perPos)
	return CompleteFollowSet(combos, owner, k)
}

// resolvePartial handles the Σn_i < k branch: every position must resolve
// to an exact-length derivation; no underflow is permitted anywhere,
// because the remaining length is supplied later by FOLLOW(L).
func (e *Engine) resolvePartial(rhsAfter grammar.SubProduction, assigned []int, k int, owner string, lhs string) *FollowSet {
	perPos := make([][]grammar.SubProduction, len(assigned))
	for i, n := range assigned {
		perPos[i] = e.G.GetExact(rhsAfter[i], n)
	}
	combos := cartesianConcat(perPos)
	return PartialFollowSet(combos, owner, k, lhs)
}

// kfollowForSymbol is spec.md §4.3's _kfollow(symbol, k): collect the
// FollowSets produced by every occurrence of symbol across the grammar.
func (e *Engine) kfollowForSymbol(symbol string, k int) ([]*FollowSet, error) {
	var out []*FollowSet
	for _, prod := range e.G.Productions {
		for i, sym := range prod.RHS {
			if sym.IsNonterm() && sym.Name == symbol {
				sets, err := e.kfollowPermutations(prod, i+1, k, symbol)
				if err != nil {
					return nil, err
				}
				out = append(out, sets...)
			}
		}
	}
	return out, nil
}

// kfollowFixpoint resolves every partial FollowSet in table against its
// Follow dependency until no set's Changed flag fires, or the iteration
// bound is exceeded (spec.md §4.3, §7).
func (e *Engine) kfollowFixpoint(table map[string][]*FollowSet, k int) error {
	for iteration := 0; ; iteration++ {
		if iteration > maxFixpointIterations {
			return &FixpointDivergedError{Symbol: e.G.Start, Iterations: iteration}
		}
		anyChanged := false
		for _, sets := range table {
			for _, f := range sets {
				f.Changed = false
			}
		}
		for _, sets := range table {
			for _, f := range sets {
				if f.IsComplete {
					continue
				}
				for _, g := range table[f.Follow] {
					f.Append(g, k)
				}
				if f.Changed {
					anyChanged = true
				}
			}
		}
		if !anyChanged {
			return nil
		}
	}
}

// KFollow computes the FOLLOW_k mapping for every nonterminal (spec.md
// §4.3's driver `kfollow(k)`).
func (e *Engine) KFollow(k int) (map[string]*LookaheadSet, error) {
	table := make(map[string][]*FollowSet)
	for _, nonterm := range e.G.Nonterminals() {
		table[nonterm] = nil
	}

	startSeed := CompleteFollowSet([]grammar.SubProduction{{grammar.Terminal(grammar.EndOfInput)}}, e.G.Start, 1)
	table[e.G.Start] = append(table[e.G.Start], startSeed)

	for i := 1; i <= k; i++ {
		for _, nonterm := range e.G.Nonterminals() {
			sets, err := e.kfollowForSymbol(nonterm, i)
			if err != nil {
				return nil, err
			}
			table[nonterm] = append(table[nonterm], sets...)
		}
		if err := e.kfollowFixpoint(table, i); err != nil {
			return nil, err
		}
	}

	out := make(map[string]*LookaheadSet)
	for _, nonterm := range e.G.Nonterminals() {
		merged := make(map[string]*FollowSet)
		for _, f := range table[nonterm] {
			key := f.Owner + "\x1f" + f.Follow
			if existing, ok := merged[key]; ok {
				merged[key] = Upgrade(existing, f)
			} else {
				merged[key] = f
			}
		}
		set := NewLookaheadSet()
		for _, f := range merged {
			for _, sp := range f.Completes {
				set.Add(lookaheadFromNormalized(sp))
			}
			for _, sp := range f.Additional {
				set.Add(lookaheadFromNormalized(sp))
			}
		}
		out[nonterm] = set
	}
	return out, nil
}
