// archivetool is a CLI utility for inspecting JSON asset archives.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/assets"
	"github.com/Faultbox/charlook/internal/engine/character"
	"github.com/Faultbox/charlook/pkg/node"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "search", "find":
		cmdSearch(args)
	case "actions":
		cmdActions(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`archivetool - JSON asset archive utility

Usage:
  archivetool <command> [options]

Commands:
  info <archive.json>                 Show node counts by kind
  list <archive.json> [path]          List children of a path
  search <archive.json> <pattern>     Search node paths by name pattern
  actions <Character.json>            List poses and meta actions

Examples:
  archivetool info data/Character.json
  archivetool list data/Character.json 00002000.img/stand1
  archivetool search data/Character.json "*.img"
  archivetool actions data/Character.json`)
}

func open(path string) *assets.Manager {
	m := assets.NewManager()
	if err := m.AddArchive(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

// archiveRoot returns the mounted archive named after path.
func archiveRoot(m *assets.Manager, path string) node.Node {
	return m.Root().Get(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: archivetool info <archive.json>")
		os.Exit(1)
	}

	m := open(args[0])
	defer m.Close()

	counts := make(map[node.Kind]int)
	total := 0
	node.Walk(archiveRoot(m, args[0]), func(_ string, n node.Node) bool {
		counts[n.Kind()]++
		total++
		return true
	})

	fmt.Printf("Archive: %s\n", args[0])
	fmt.Printf("Nodes:   %d\n", total)
	fmt.Println()
	fmt.Println("Nodes by kind:")

	kinds := make([]node.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return counts[kinds[i]] > counts[kinds[j]]
	})
	for _, k := range kinds {
		fmt.Printf("  %-10s %d\n", k, counts[k])
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N entries (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: archivetool list <archive.json> [path]")
		os.Exit(1)
	}

	m := open(fs.Arg(0))
	defer m.Close()

	n := archiveRoot(m, fs.Arg(0))
	if fs.NArg() > 1 {
		n = node.Path(n, strings.Split(strings.Trim(fs.Arg(1), "/"), "/")...)
	}
	if !n.Exists() {
		fmt.Fprintf(os.Stderr, "Path not found: %s\n", fs.Arg(1))
		os.Exit(1)
	}

	for i, c := range n.Children() {
		if *limit > 0 && i >= *limit {
			break
		}
		fmt.Printf("%-32s %-10s %s\n", c.Name(), c.Kind(), describe(c))
	}
}

// describe renders a leaf value.
func describe(n node.Node) string {
	switch n.Kind() {
	case node.KindInteger:
		return fmt.Sprint(n.Int())
	case node.KindReal:
		return fmt.Sprint(n.Float())
	case node.KindString:
		return n.String()
	case node.KindBool:
		return fmt.Sprint(n.Bool())
	case node.KindVector:
		v := n.Vector()
		return fmt.Sprintf("(%d,%d)", v.X, v.Y)
	case node.KindBitmap:
		b := n.Bitmap()
		return fmt.Sprintf("%s %dx%d", b.Path, b.Width, b.Height)
	case node.KindAudio:
		return n.Audio()
	default:
		return fmt.Sprintf("%d children", len(n.Children()))
	}
}

func cmdSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("n", 100, "Limit results")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: archivetool search <archive.json> <pattern>")
		os.Exit(1)
	}

	m := open(fs.Arg(0))
	defer m.Close()

	pattern := strings.ToLower(fs.Arg(1))
	count := 0
	node.Walk(archiveRoot(m, fs.Arg(0)), func(path string, n node.Node) bool {
		if *limit > 0 && count >= *limit {
			return false
		}
		name := strings.ToLower(n.Name())
		matched, _ := filepath.Match(pattern, name)
		if matched || strings.Contains(name, pattern) {
			fmt.Println(path)
			count++
		}
		return true
	})

	fmt.Fprintf(os.Stderr, "\n(%d nodes matched)\n", count)
}

func cmdActions(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: archivetool actions <Character.json>")
		os.Exit(1)
	}

	m := open(args[0])
	defer m.Close()

	ctx := character.NewContext(m.Root(), character.WithLogger(zap.NewNop()))
	defer ctx.Close()
	table := ctx.Table()

	fmt.Println("Poses:")
	for _, p := range character.Poses() {
		if frames := table.Frames(p); frames > 0 {
			fmt.Printf("  %-12s %d frames\n", p, frames)
		}
	}

	fmt.Println()
	fmt.Println("Actions:")
	for _, name := range table.Actions() {
		fmt.Printf("  %-24s attack delays %v\n", name, table.AttackDelays(name))
	}
}
