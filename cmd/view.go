package main

import (
	"encoding/json"
	"fmt"
	"os"

	"healthinsights/internal/resolver"
	"healthinsights/internal/types"
)

// runView resolves one selection and prints the payload as JSON, for piping
// into other tools or eyeballing what a renderer would receive.
func runView(res *resolver.Resolver, category, indicator string) {
	payload, err := res.Resolve(types.SelectionState{Category: category, Indicator: indicator})
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve failed: %v\n", err)
		os.Exit(1)
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode payload: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
