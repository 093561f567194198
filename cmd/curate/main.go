// Command curate validates, encodes and catalogs Curation Metadata documents.
package main

import "github.com/mesh-intelligence/curation/internal/cli"

func main() {
	cli.Execute()
}
