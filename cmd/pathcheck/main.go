// Command pathcheck runs a single grid search against a level and
// prints the result. Useful for checking routes while authoring levels.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gridnav/levels"
	"gridnav/nav"
)

func main() {
	var (
		levelName = flag.String("level", "arena.json", "embedded level name, or a path when -level-file is set")
		levelFile = flag.Bool("level-file", false, "load -level from disk instead of the embedded set")
		from      = flag.String("from", "", "start cell as x,y")
		to        = flag.String("to", "", "goal cell as x,y")
		budget    = flag.Int("budget", 0, "max expanded nodes, 0 for unlimited")
		explored  = flag.Bool("explored", false, "also print the explored cells")
	)
	flag.Parse()

	if err := run(*levelName, *levelFile, *from, *to, *budget, *explored); err != nil {
		fmt.Fprintln(os.Stderr, "pathcheck:", err)
		os.Exit(1)
	}
}

func run(levelName string, levelFile bool, from, to string, budget int, showExplored bool) error {
	start, err := parseCell(from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	goal, err := parseCell(to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}

	var lvl *levels.Level
	if levelFile {
		lvl, err = levels.Load(levelName)
	} else {
		lvl, err = levels.LoadFromFS(levelName)
	}
	if err != nil {
		return err
	}
	grid, err := lvl.BuildGrid()
	if err != nil {
		return err
	}

	res := nav.Find(grid, start, goal, budget)
	fmt.Printf("status: %s\n", res.Status)
	fmt.Printf("expanded: %d\n", len(res.Explored))
	if res.Status == nav.Found {
		fmt.Printf("length: %d cells, cost %.3f\n", len(res.Path), nav.PathCost(res.Path))
		fmt.Printf("path: %s\n", joinCells(res.Path))
	}
	if showExplored {
		fmt.Printf("explored: %s\n", joinCells(res.Explored))
	}
	return nil
}

func parseCell(s string) (nav.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nav.Cell{}, fmt.Errorf("want x,y got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nav.Cell{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nav.Cell{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return nav.Cell{X: x, Y: y}, nil
}

func joinCells(cells []nav.Cell) string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.String())
	}
	return strings.Join(out, " ")
}
