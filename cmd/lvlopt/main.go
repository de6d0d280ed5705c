// Command lvlopt inspects and evaluates optimization models written as YAML
// model files.
//
//	lvlopt inspect model.yaml
//	lvlopt eval model.yaml --at x=1,y=2 --multipliers 0.5,1
//	lvlopt linear model.yaml
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
