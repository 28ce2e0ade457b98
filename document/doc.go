// Package document loads OpenAPI documents into an immutable node tree.
//
// Import path: github.com/erraggy/oaslint/document
//
// Both YAML and JSON are accepted. The format is taken from the file extension
// when there is one and otherwise inferred from the content. Every [Node] carries
// its [Path] from the root and its 1-based source position:
//
//	doc, err := document.LoadFile("openapi.yaml")
//	if err != nil {
//	    var pe *oaserrors.ParseError
//	    if errors.As(err, &pe) {
//	        fmt.Printf("%s:%d:%d: %s\n", pe.Path, pe.Line, pe.Column, pe.Message)
//	    }
//	    return err
//	}
//	paths, _ := doc.Root.Get("paths")
//	fmt.Println(paths.Path()) // "/paths"
//
// Loading fails with a *oaserrors.ParseError on malformed syntax, an empty
// document, a root that is not a mapping, duplicate keys, or non-scalar keys.
// YAML aliases and merge keys are expanded at the site where they are used.
package document
