package format

import (
	"fmt"
	"strings"
)

// diffContextLines is the number of unchanged lines shown around each
// change.
const diffContextLines = 3

// Diff is a unified diff between the original and formatted content of
// one file.
type Diff struct {
	// Path is used in the diff headers.
	Path string

	// Hunks are the grouped change regions.
	Hunks []DiffHunk

	// Additions and Deletions count changed lines across all hunks.
	Additions int
	Deletions int
}

// DiffHunk is one contiguous change region with context.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a single diff output line.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind distinguishes context, added, and removed lines.
type DiffLineKind int

const (
	DiffContext DiffLineKind = iota
	DiffAdd
	DiffRemove
)

// NewDiff computes a unified diff. It returns nil when the contents are
// identical.
func NewDiff(path, original, modified string) *Diff {
	origLines := toLines(original)
	modLines := toLines(modified)

	ops := diffOps(origLines, modLines)

	changed := false
	for _, op := range ops {
		if op.kind != DiffContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, hunk := range d.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffAdd:
				d.Additions++
			case DiffRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", d.Path)
	fmt.Fprintf(&b, "+++ b/%s\n", d.Path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffContext:
				b.WriteString(" ")
			case DiffAdd:
				b.WriteString("+")
			case DiffRemove:
				b.WriteString("-")
			}
			b.WriteString(line.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// toLines splits content for line diffing, dropping the final empty
// element a trailing newline produces.
func toLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffOp is one elementary diff step carrying the source indices.
type diffOp struct {
	kind    DiffLineKind
	content string
	origIdx int // -1 for additions
	modIdx  int // -1 for removals
}

// diffOps walks both line slices against their longest common
// subsequence, emitting removals, additions, and context in order.
func diffOps(orig, mod []string) []diffOp {
	table := lcsTable(orig, mod)

	var ops []diffOp
	i, j := 0, 0
	for i < len(orig) && j < len(mod) {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, diffOp{kind: DiffContext, content: orig[i], origIdx: i, modIdx: j})
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			ops = append(ops, diffOp{kind: DiffRemove, content: orig[i], origIdx: i, modIdx: -1})
			i++
		default:
			ops = append(ops, diffOp{kind: DiffAdd, content: mod[j], origIdx: -1, modIdx: j})
			j++
		}
	}
	for ; i < len(orig); i++ {
		ops = append(ops, diffOp{kind: DiffRemove, content: orig[i], origIdx: i, modIdx: -1})
	}
	for ; j < len(mod); j++ {
		ops = append(ops, diffOp{kind: DiffAdd, content: mod[j], origIdx: -1, modIdx: j})
	}
	return ops
}

// lcsTable builds the suffix LCS length table: table[i][j] is the LCS
// length of orig[i:] and mod[j:].
func lcsTable(orig, mod []string) [][]int {
	table := make([][]int, len(orig)+1)
	for i := range table {
		table[i] = make([]int, len(mod)+1)
	}
	for i := len(orig) - 1; i >= 0; i-- {
		for j := len(mod) - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}
	return table
}

// groupHunks folds the op sequence into hunks, keeping at most
// diffContextLines of context on either side of each change run.
func groupHunks(ops []diffOp) []DiffHunk {
	// Mark which ops are within context distance of a change.
	keep := make([]bool, len(ops))
	for idx, op := range ops {
		if op.kind == DiffContext {
			continue
		}
		lo := idx - diffContextLines
		if lo < 0 {
			lo = 0
		}
		hi := idx + diffContextLines
		if hi > len(ops)-1 {
			hi = len(ops) - 1
		}
		for k := lo; k <= hi; k++ {
			keep[k] = true
		}
	}

	var hunks []DiffHunk
	idx := 0
	for idx < len(ops) {
		if !keep[idx] {
			idx++
			continue
		}

		start := idx
		for idx < len(ops) && keep[idx] {
			idx++
		}
		run := ops[start:idx]

		hunk := DiffHunk{
			OriginalStart: firstIndex(run, false) + 1,
			ModifiedStart: firstIndex(run, true) + 1,
		}
		for _, op := range run {
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
			if op.kind != DiffAdd {
				hunk.OriginalCount++
			}
			if op.kind != DiffRemove {
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)
	}
	return hunks
}

// firstIndex finds the first source index present in a run, on the
// modified side when mod is true.
func firstIndex(run []diffOp, mod bool) int {
	for _, op := range run {
		if mod && op.modIdx >= 0 {
			return op.modIdx
		}
		if !mod && op.origIdx >= 0 {
			return op.origIdx
		}
	}
	return 0
}
