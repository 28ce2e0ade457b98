package resolver

import (
	"fmt"
	"strconv"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/pathutil"
	"github.com/erraggy/oaslint/oaserrors"
)

// lookup walks a local JSON Pointer from root over the unresolved document.
func lookup(root *document.Node, ref string) (*document.Node, error) {
	tokens, err := pathutil.SplitLocalRef(ref)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "malformed pointer", Cause: err}
	}

	cur := root
	for i, tok := range tokens {
		var next *document.Node
		var ok bool
		switch cur.Kind() {
		case document.KindMapping:
			next, ok = cur.Get(tok)
		case document.KindSequence:
			idx, perr := parseIndex(tok)
			if perr != nil {
				return nil, &oaserrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("invalid array index %q at token %d", tok, i+1),
				}
			}
			next, ok = cur.Item(idx)
		default:
			return nil, &oaserrors.ReferenceError{
				Ref:     ref,
				Message: fmt.Sprintf("cannot descend into %s at %s", cur.TypeName(), cur.Path().Fragment()),
			}
		}
		if !ok {
			return nil, &oaserrors.ReferenceError{
				Ref:     ref,
				Message: fmt.Sprintf("target not found (no %q under %s)", tok, cur.Path().Fragment()),
			}
		}
		cur = next
	}
	return cur, nil
}

// parseIndex accepts RFC 6901 array indices: "0" or digits without a leading zero.
func parseIndex(tok string) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, fmt.Errorf("invalid index %q", tok)
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid index %q", tok)
		}
	}
	return strconv.Atoi(tok)
}
