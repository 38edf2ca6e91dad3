// Package ll1k implements the LL(k) table-generation core: the FIRST_k and
// FOLLOW_k fixpoint engines, bounded derivation search, and the parse
// table assembler, all operating over a grammar.Grammar.
package ll1k

import (
	"strconv"
	"strings"

	"github.com/shadowCow/llkgen/grammar"
)

// FirstSet is a set of SubProductions, each of length <= k, representing
// candidate bounded prefixes derivable from some source (spec.md §3).
type FirstSet struct {
	members map[string]grammar.SubProduction
}

// NewFirstSet returns an empty FirstSet.
func NewFirstSet() FirstSet {
	return FirstSet{members: make(map[string]grammar.SubProduction)}
}

func singletonFirstSet(sp grammar.SubProduction) FirstSet {
	fs := NewFirstSet()
	fs.members[sp.Key()] = sp
	return fs
}

// Add inserts sp into fs, deduplicating on its canonical key.
func (fs FirstSet) Add(sp grammar.SubProduction) {
	fs.members[sp.Key()] = sp
}

// Union returns fs ∪ other as a new FirstSet.
func (fs FirstSet) Union(other FirstSet) FirstSet {
	out := NewFirstSet()
	for k, v := range fs.members {
		out.members[k] = v
	}
	for k, v := range other.members {
		out.members[k] = v
	}
	return out
}

// Cross returns the Cartesian product fs × other: {concat(a, b) : a ∈ fs, b ∈ other}
// (spec.md §4.2). Concatenation is unnormalized here; normalization happens
// once, in KFirst, to keep the raw recursion's length accounting uniform.
func Cross(fs, other FirstSet) FirstSet {
	out := NewFirstSet()
	for _, a := range fs.members {
		for _, b := range other.members {
			out.Add(a.Concat(b))
		}
	}
	return out
}

// UnionAll folds Union over a slice of FirstSets.
func UnionAll(sets []FirstSet) FirstSet {
	out := NewFirstSet()
	for _, fs := range sets {
		out = out.Union(fs)
	}
	return out
}

// Members returns the distinct SubProductions held by fs.
func (fs FirstSet) Members() []grammar.SubProduction {
	out := make([]grammar.SubProduction, 0, len(fs.members))
	for _, v := range fs.members {
		out = append(out, v)
	}
	return out
}

func (fs FirstSet) Len() int { return len(fs.members) }

// fiArg is the `x` of spec.md §4.2's recursive contract: either a bare
// nonterminal name or a SubProduction.
type fiArg struct {
	isNonterm bool
	nonterm   string
	seq       grammar.SubProduction
}

func fiNonterm(name string) fiArg              { return fiArg{isNonterm: true, nonterm: name} }
func fiSeq(sp grammar.SubProduction) fiArg      { return fiArg{seq: sp} }
func (a fiArg) key() string {
	if a.isNonterm {
		return "N:" + a.nonterm
	}
	return "S:" + a.seq.Key()
}

// Engine holds the memoization and cycle-detection state for the FIRST_k
// and FOLLOW_k computations over a single grammar. An Engine is built once
// per generate call and discarded afterward (spec.md §5).
type Engine struct {
	G *grammar.Grammar

	firstMemo   map[string][]FirstSet
	firstActive map[string]bool

	tracer *Tracer
}

// NewEngine builds an Engine ready to compute FIRST_k/FOLLOW_k over g.
func NewEngine(g *grammar.Grammar) *Engine {
	return &Engine{
		G:           g,
		firstMemo:   make(map[string][]FirstSet),
		firstActive: make(map[string]bool),
	}
}

// WithTracer attaches a call tracer that records every Fi call; see
// Tracer.Render and Tracer.DOT in debug.go.
func (e *Engine) WithTracer(t *Tracer) *Engine {
	e.tracer = t
	return e
}

func firstMemoKey(x fiArg, k int, allowUnderflow bool) string {
	var b strings.Builder
	b.WriteString(x.key())
	b.WriteByte('\x1f')
	b.WriteString(strconv.Itoa(k))
	b.WriteByte('\x1f')
	if allowUnderflow {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	return b.String()
}

// Fi implements the recursive contract from spec.md §4.2. x is either a
// nonterminal name (fiNonterm) or a SubProduction (fiSeq).
func (e *Engine) Fi(x fiArg, k int, allowUnderflow bool) []FirstSet {
	key := firstMemoKey(x, k, allowUnderflow)
	if sets, ok := e.firstMemo[key]; ok {
		return sets
	}
	if e.firstActive[key] {
		// Back-edge in the active recursion: a cycle at unchanged k
		// cannot contribute new information (spec.md §9).
		return nil
	}
	e.firstActive[key] = true
	if e.tracer != nil {
		e.tracer.Enter("Fi", x.key(), k, allowUnderflow)
	}
	sets := e.fiUncached(x, k, allowUnderflow)
	if e.tracer != nil {
		e.tracer.Leave("Fi", x.key(), k, allowUnderflow, sets)
	}
	delete(e.firstActive, key)
	e.firstMemo[key] = sets
	return sets
}

func (e *Engine) fiUncached(x fiArg, k int, allowUnderflow bool) []FirstSet {
	// Case 1: x is a bare nonterminal - expand over each of its rhs.
	if x.isNonterm {
		var out []FirstSet
		for _, rhs := range e.G.RHSsOf(x.nonterm) {
			out = append(out, e.Fi(fiSeq(rhs), k, allowUnderflow)...)
		}
		return out
	}

	sp := x.seq

	// Case 2: empty SubProduction.
	if len(sp) == 0 {
		return []FirstSet{singletonFirstSet(grammar.SubProduction{})}
	}

	terms, rest := sp.InitialTerminals(k)

	// Case 3a: the whole leading run is a lone epsilon, requested at k=0.
	if len(terms) == 1 && terms[0].IsEpsilon() && k == 0 {
		return []FirstSet{singletonFirstSet(terms)}
	}

	// Case 3b: leading terminals exactly fill the request.
	if len(terms) > 0 && len(terms) == k {
		if allowUnderflow || len(rest) == 0 {
			return []FirstSet{singletonFirstSet(terms)}
		}
	}

	// Case 4: not enough terminals, and nothing left to expand.
	if len(rest) == 0 {
		return nil
	}

	// Case 5: leading nonterminal (terms is empty: the first symbol is a
	// nonterminal, or k is 0; a leading terminal at k=0 is looked up by its
	// name like a nonterminal here).
	if len(terms) == 0 {
		head, afterHead := sp.Head()
		var out []FirstSet
		out = append(out, e.Fi(fiNonterm(head.Name), k, allowUnderflow)...)
		for i := 1; i <= k; i++ {
			headSets := e.Fi(fiNonterm(head.Name), k-i, false)
			restSets := e.Fi(fiSeq(afterHead), i, allowUnderflow)
			headUnion := UnionAll(headSets)
			restUnion := UnionAll(restSets)
			out = append(out, Cross(headUnion, restUnion))
		}
		return out
	}

	// Case 6: a nonempty terminal prefix shorter than k, followed by a
	// nonterminal (rest is nonempty here by the case-4 check above).
	restUnion := UnionAll(e.Fi(fiSeq(rest), k-len(terms), allowUnderflow))
	return []FirstSet{Cross(singletonFirstSet(terms), restUnion)}
}

// KFirst computes kfirst(k): the final FIRST mapping for every nonterminal
// in the grammar, normalized into Lookahead values (spec.md §4.2).
func (e *Engine) KFirst(k int) map[string]*LookaheadSet {
	out := make(map[string]*LookaheadSet)
	for _, nonterm := range e.G.Nonterminals() {
		out[nonterm] = NewLookaheadSet()
	}
	for i := 1; i <= k; i++ {
		for _, nonterm := range e.G.Nonterminals() {
			sets := e.Fi(fiNonterm(nonterm), i, true)
			union := UnionAll(sets)
			for _, sp := range union.Members() {
				normalized := sp.Normalized()
				out[nonterm].Add(lookaheadFromNormalized(normalized))
			}
		}
	}
	return out
}

// lookaheadFromNormalized maps a normalized (epsilon-stripped) SubProduction
// to its Lookahead representation: empty -> ε, single terminal -> Single,
// longer -> Tuple (spec.md §4.2 aggregation step).
func lookaheadFromNormalized(sp grammar.SubProduction) Lookahead {
	if len(sp) == 0 {
		return EpsilonLookahead
	}
	if len(sp) == 1 {
		return Single(sp[0].Name)
	}
	return Tuple(sp.Strings())
}
