package chatstream

import (
	"regexp"
	"strings"
)

// BlockKind tags a specialized fenced block.
type BlockKind string

const (
	BlockCircuit BlockKind = "circuit"
	BlockChem    BlockKind = "chem"
)

// Block is one closed fenced region lifted out of the answer text.
type Block struct {
	Kind BlockKind `json:"kind"`
	Body string    `json:"body"`
}

// An opening fence is ```circuit or ```chem (anything after the marker on the
// same line, such as "chemistry", is ignored). The generic ``` closes it.
var fencedBlock = regexp.MustCompile("(?s)```(circuit|chem)[^\n]*\n(.*?)```")

// Extract splits text into the markdown that stays inline and the closed
// circuit/chem blocks, in order of appearance. Unclosed fences are left in
// the remaining text. Extract is pure: the same input always yields the same
// output, so callers re-run it over the whole accumulated text on every delta.
func Extract(text string) (string, []Block) {
	matches := fencedBlock.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	blocks := make([]Block, 0, len(matches))
	var remaining strings.Builder
	last := 0
	for _, m := range matches {
		remaining.WriteString(text[last:m[0]])
		blocks = append(blocks, Block{
			Kind: BlockKind(text[m[2]:m[3]]),
			Body: strings.TrimSpace(text[m[4]:m[5]]),
		})
		last = m[1]
	}
	remaining.WriteString(text[last:])

	return remaining.String(), blocks
}
