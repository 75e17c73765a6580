package main

import "fmt"

// printBanner prints the startup banner to stdout, the way core.PrintBanner
// announces the teacher's process before it logs its first config line.
func printBanner() {
	banner := `
   __      __  __  _
  / /   __ _\ \/ /_(_)________
 / /   / _  /\  / __/ / ___/ /
/ /___/ /_/ / / / /_/ / /__/ /
\____/\__,_/ /_/\__/_/\___/_/

    Deterministic Cellular Lattice Engine
    ──────────────────────────────────────
`
	fmt.Print(banner)
}
