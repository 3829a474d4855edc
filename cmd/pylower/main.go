// Command pylower lowers grammar-engine parse trees into the reference
// front end's AST.
package main

import "github.com/leapstack-labs/pylower/internal/cli"

func main() {
	cli.Execute()
}
