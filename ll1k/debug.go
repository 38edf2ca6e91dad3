package ll1k

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// Tracer records the call graph of the FIRST_k recursion (Engine.Fi,
// including the Fi calls FOLLOW_k makes) for introspection, the way the original generator's RecurseDebug wraps
// `_kfirst`/`_kfollow_permutations` for a graphviz dump when debug logging
// is requested. Render gives the interactive pterm.DefaultTree view; DOT
// reproduces the original's graphviz dump directly, keyed by each node's
// uuid so node and edge statements stay stable even if two frames share a
// label.
type Tracer struct {
	root  *traceNode
	stack []*traceNode
}

type traceNode struct {
	id       string
	label    string
	result   string
	children []*traceNode
}

// NewTracer returns an empty Tracer ready to be attached to an Engine via
// Engine.WithTracer.
func NewTracer() *Tracer {
	root := &traceNode{id: uuid.NewString(), label: "root"}
	return &Tracer{root: root, stack: []*traceNode{root}}
}

// Enter pushes a new traced call frame labeled by fn and its arguments.
func (t *Tracer) Enter(fn string, arg string, k int, allowUnderflow bool) {
	node := &traceNode{
		id:    uuid.NewString(),
		label: fmt.Sprintf("%s(%s, k=%d, underflow=%v)", fn, arg, k, allowUnderflow),
	}
	parent := t.stack[len(t.stack)-1]
	parent.children = append(parent.children, node)
	t.stack = append(t.stack, node)
}

// Leave pops the current call frame, attaching a short summary of sets as
// its result.
func (t *Tracer) Leave(fn string, arg string, k int, allowUnderflow bool, sets []FirstSet) {
	if len(t.stack) <= 1 {
		return
	}
	node := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	total := 0
	for _, s := range sets {
		total += s.Len()
	}
	node.result = fmt.Sprintf("-> %d member(s)", total)
}

// Render prints the recorded call tree with pterm.DefaultTree.
func (t *Tracer) Render() {
	pterm.DefaultTree.WithRoot(t.toTreeNode(t.root)).Render()
}

func (t *Tracer) toTreeNode(n *traceNode) pterm.TreeNode {
	text := n.label
	if n.result != "" {
		text = text + " " + n.result
	}
	children := make([]pterm.TreeNode, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, t.toTreeNode(c))
	}
	return pterm.TreeNode{Text: text, Children: children}
}

// DOT renders the recorded call tree as a graphviz digraph, the format
// the original generator's RecurseDebug dumps. Each node statement is
// keyed by its uuid rather than its label, since two frames can carry an
// identical label (the same nonterminal recursed into twice).
func (t *Tracer) DOT() string {
	var b strings.Builder
	b.WriteString("digraph recursion {\n")
	t.writeDOT(&b, t.root)
	b.WriteString("}\n")
	return b.String()
}

func (t *Tracer) writeDOT(b *strings.Builder, n *traceNode) {
	label := n.label
	if n.result != "" {
		label = label + "\\n" + n.result
	}
	fmt.Fprintf(b, "  %q [label=%q];\n", n.id, label)
	for _, c := range n.children {
		fmt.Fprintf(b, "  %q -> %q;\n", n.id, c.id)
		t.writeDOT(b, c)
	}
}

// PrintFirstSets renders a KFirst() result as a pterm table, in the
// spirit of the teacher's PrintFirstSets.
func PrintFirstSets(sets map[string]*LookaheadSet) {
	rows := pterm.TableData{{"Nonterminal", "FIRST"}}
	for nonterm, set := range sets {
		for _, la := range set.Members() {
			rows = append(rows, []string{nonterm, la.String()})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// PrintFollowSets renders a KFollow() result as a pterm table, in the
// spirit of the teacher's PrintFollowSets.
func PrintFollowSets(sets map[string]*LookaheadSet) {
	rows := pterm.TableData{{"Nonterminal", "FOLLOW"}}
	for nonterm, set := range sets {
		for _, la := range set.Members() {
			rows = append(rows, []string{nonterm, la.String()})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// PrintParseTable renders a ParseTable as a pterm table, in the spirit of
// the teacher's PrintParseTable.
func PrintParseTable(t *ParseTable) {
	rows := pterm.TableData{{"Nonterminal", "Lookahead", "Production"}}
	for _, nonterm := range t.Nonterminals() {
		for _, c := range t.Row(nonterm) {
			rows = append(rows, []string{nonterm, c.Lookahead.String(), c.Production.String()})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
