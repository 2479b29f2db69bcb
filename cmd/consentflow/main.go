// Command consentflow renders the consent-routing network animation.
//
//	consentflow run                 live animation in the terminal
//	consentflow snapshot --out f    render PNG frames offscreen
//	consentflow routes              print routes and blocked flags
//	consentflow graph               print topology and hop depths
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
