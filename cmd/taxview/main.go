// taxview is the command-line interface: serve the API, resolve single codes,
// validate datasets and rebuild fuzzy tables.
package main

import "github.com/agrabowski5/TaxonomyViewing/internal/interfaces/cli"

func main() {
	cli.Execute()
}
