package easel

import (
	"fmt"
	"os"
)

// debugMaxTreeDepth warns when an object tree grows suspiciously deep.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(o *Object) {
	depth := 0
	for p := o; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[easel] warning: tree depth %d exceeds %d (object %q)\n",
			depth, debugMaxTreeDepth, o.Name)
	}
}

// debugMaxChildCount warns when an object accumulates too many children.
const debugMaxChildCount = 1000

func debugCheckChildCount(o *Object) {
	if len(o.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[easel] warning: object %q has %d children (threshold %d)\n",
			o.Name, len(o.children), debugMaxChildCount)
	}
}

// countShapeCommands tallies the geometry-producing instructions in a
// list, skipping state changes. Useful when sizing scenes.
func countShapeCommands(l *CommandList) int {
	count := 0
	for i := range l.cmds {
		switch l.cmds[i].Op {
		case OpEllipse, OpLine, OpRoundRect, OpText, OpImage:
			count++
		}
	}
	return count
}
