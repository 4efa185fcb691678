// Command almanac queries the Chinese lunisolar calendar from the terminal.
package main

import "github.com/zapponejosh/lunisolar/internal/cli"

func main() {
	cli.Execute()
}
