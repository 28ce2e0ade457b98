// Package resolver replaces local $ref mappings with the nodes they point to.
//
// Import path: github.com/erraggy/oaslint/resolver
//
// Resolution never fails. Faulty references are reported as Error issues and
// stand in as empty-mapping placeholders so later stages need no special cases:
//
//   - CIRCULAR_REFERENCE: the target is still being built, or the chain of
//     references re-enters itself
//   - UNRESOLVED_REFERENCE: the pointer names no node
//   - UNSUPPORTED_REFERENCE: the reference is not a same-document pointer
//   - REFERENCE_DEPTH_EXCEEDED: more than MaxDepth consecutive $ref hops
//
// Every target is built once and shared by all sites referencing it, and each
// faulty site is reported once:
//
//	doc, _ := document.LoadFile("api.yaml")
//	res := resolver.New(resolver.WithMaxDepth(32)).Resolve(doc)
//	for _, iss := range res.Issues {
//	    fmt.Println(iss)
//	}
//
// Issue paths always name where a node is written. A schema reached through
// "#/components/schemas/Pet" reports paths under /components/schemas/Pet.
package resolver
