// Command mamba reviews Apex pull request diffs with a chat-completion model
// and posts the result as a pull request comment.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
