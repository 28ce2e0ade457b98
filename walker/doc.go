// Package walker traverses a resolved OpenAPI 3.x document by object category.
//
// Handlers are registered per [Category] and receive a [WalkContext] describing
// the node and where it was found:
//
//	var operationIDs []string
//	err := walker.Walk(ctx, resolved,
//	    walker.WithHandler(walker.CategoryOperation, func(wc *walker.WalkContext) walker.Action {
//	        if id, ok := wc.Node.StringField("operationId"); ok {
//	            operationIDs = append(operationIDs, id)
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Shared Nodes
//
// References make the resolved view a graph: a component schema used by ten
// operations is reachable ten ways. Each written node is dispatched at most once
// per category, with the context of the first route that reached it. Reference
// placeholders are never dispatched. Schema nesting beyond the configured depth
// (default 100) is not visited.
//
// Traversal covers paths, webhooks, callbacks and every components section.
package walker
