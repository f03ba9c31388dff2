package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"

	"healthinsights/internal/catalog"
	"healthinsights/internal/resolver"
	"healthinsights/internal/types"
)

const browseBanner = "County Health Insights — pick a category, then an indicator.\n" +
	"Data: 2024 County Health Rankings & Roadmaps."

// browse is the terminal stand-in for the dashboard's tabs and dropdowns:
// arrow keys move through categories and indicators, Enter resolves the
// selection and renders the ranking, Esc steps back.
func browse(cat *catalog.Catalog, res *resolver.Resolver) {
	if runtime.GOOS == "windows" {
		enableVT()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println("(interactive browsing not supported on this terminal)")
		return
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(os.Stdin)

	categories := cat.Categories()
	const (
		levelCategories = iota
		levelIndicators
	)
	level := levelCategories
	selected := 0
	var category string
	var indicators []string

	redraw := func() {
		// Clear screen (ANSI reset to top + clear screen)
		fmt.Print("\033[H\033[2J")
		var lines []string
		switch level {
		case levelCategories:
			fmt.Println(strings.ReplaceAll(browseBanner, "\n", "\r\n") + "\r")
			fmt.Println("\r")
			lines = categories
		case levelIndicators:
			fmt.Printf("%s\r\n\r\n", category)
			lines = indicators
		}
		for i, l := range lines {
			prefix := "  "
			if i == selected {
				prefix = "> "
			}
			fmt.Print(prefix + l + "\r\n")
		}
		fmt.Print("(↑/↓ to navigate, Enter to select, Esc to go back)\r\n")
	}

	enter := func() {
		switch level {
		case levelCategories:
			category = categories[selected]
			inds, err := cat.Indicators(category)
			if err != nil {
				return
			}
			indicators = inds
			level = levelIndicators
			selected = 0
			redraw()
		case levelIndicators:
			term.Restore(fd, oldState)
			fmt.Println()
			renderRanking(res, category, indicators[selected])

			fmt.Print("\n(press Enter to return)")
			_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

			oldState, err = term.MakeRaw(fd)
			if err != nil {
				return
			}
			if runtime.GOOS == "windows" {
				enableVT()
			}
			reader = bufio.NewReader(os.Stdin)
			redraw()
		}
	}

	back := func() bool {
		if level == levelIndicators {
			level = levelCategories
			selected = 0
			redraw()
			return false
		}
		return true // at the top level Esc exits
	}

	limit := func() int {
		if level == levelCategories {
			return len(categories)
		}
		return len(indicators)
	}

	redraw()

	for {
		b1, err := reader.ReadByte()
		if err != nil {
			return
		}
		// Windows console arrow sequences (0 or 224 prefix, then code)
		if b1 == 0 || b1 == 224 {
			b2, _ := reader.ReadByte()
			switch b2 {
			case 72: // up
				if selected > 0 {
					selected--
					redraw()
				}
			case 80: // down
				if selected < limit()-1 {
					selected++
					redraw()
				}
			case 13: // Enter
				enter()
			}
			continue
		}

		switch b1 {
		case 27: // ESC or ANSI sequence
			if reader.Buffered() == 0 {
				// Bare ESC
				if back() {
					fmt.Println()
					return
				}
				continue
			}
			b2, _ := reader.ReadByte()
			if b2 != '[' {
				continue
			}
			if reader.Buffered() == 0 {
				continue
			}
			b3, _ := reader.ReadByte()
			switch b3 {
			case 'A': // up
				if selected > 0 {
					selected--
					redraw()
				}
			case 'B': // down
				if selected < limit()-1 {
					selected++
					redraw()
				}
			}
		case '\r', '\n': // Enter
			enter()
		case 3: // Ctrl-C
			fmt.Println()
			return
		default:
			// ignore other keys
		}
	}
}

// renderRanking resolves the selection and prints the ranked counties with
// the coverage summary, mirroring the dashboard's top/bottom bar charts.
func renderRanking(res *resolver.Resolver, category, indicator string) {
	payload, err := res.Resolve(types.SelectionState{Category: category, Indicator: indicator})
	if err != nil {
		fmt.Printf("Selection unavailable: %v\n", err)
		return
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%s\n", payload.Title)
	fmt.Printf("Category          : %s\n", payload.Category)
	fmt.Printf("Unit              : %s\n", payload.Unit)
	fmt.Printf("Median            : %.2f\n", payload.Median)
	fmt.Printf("Coverage          : %d/%d valid", payload.Summary.Valid, payload.Summary.Total)
	if payload.Summary.Unjoined > 0 {
		fmt.Printf(", %d without geometry", payload.Summary.Unjoined)
	}
	fmt.Println()

	printGroup := func(label string, points []types.SeriesPoint) {
		fmt.Printf("\n%s\n", label)
		for i, pt := range points {
			fmt.Printf("  %2d. %-28s %12.2f\n", i+1, pt.Name, pt.Value)
		}
	}
	printGroup(fmt.Sprintf("Top %d Counties", len(payload.Top)), payload.Top)
	printGroup(fmt.Sprintf("Bottom %d Counties", len(payload.Bottom)), payload.Bottom)

	if len(payload.NoData) > 0 {
		names := make([]string, 0, len(payload.NoData))
		for _, nd := range payload.NoData {
			names = append(names, fmt.Sprintf("%s (%s)", nd.Name, nd.Reason))
		}
		fmt.Printf("\nNo data: %s\n", strings.Join(names, ", "))
	}
	fmt.Println(strings.Repeat("-", 80))
}
