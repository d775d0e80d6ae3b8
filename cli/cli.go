// Package cli provides terminal I/O, output pacing, and meta-command
// dispatch for the Space Dystopia game engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Ayush-Kadali/Space-Dystopia/engine"
	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine          *engine.Engine
	In              io.Reader
	Out             io.Writer
	TypewriterDelay time.Duration // per-rune pacing for narrative lines; 0 disables
	Trace           bool
	EchoInput       bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the banner and intro, describes the
// starting location, then loops: menu → prompt → input → dispatch → output.
func (c *CLI) Run() {
	game := c.Engine.Defs.Game
	c.printLine(fmt.Sprintf("%s v%s by %s", game.Title, game.Version, game.Author))
	c.printLine("")
	if game.Intro != "" {
		c.typewrite(game.Intro)
		c.printLine("")
	}
	c.printLines(c.Engine.DescribeLocation())

	scanner := bufio.NewScanner(c.In)
	for {
		c.printLine("")
		c.printLines(c.Engine.Options())
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}

		if state.GameOver(c.Engine.State) {
			c.printEndStats()
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit   — Exit game",
		"  /help   — Show this help",
		"  /state  — Debug: dump current state",
		"  /trace  — Toggle debug trace output",
		"",
		"Gameplay: type the number of a menu option and press Enter.",
		"0 cancels a submenu. During combat only combat options are accepted.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Mode: %s", s.Mode))
	c.printSystem(fmt.Sprintf("Location: %s", s.Player.Location))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Player.Inventory))
	if len(s.Player.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Player.Flags))
	}
	if len(s.Counters) > 0 {
		c.printSystem(fmt.Sprintf("Counters: %v", s.Counters))
	}
	if n := len(s.CommandLog); n > 0 {
		start := n - 5
		if start < 0 {
			start = 0
		}
		c.printSystem(fmt.Sprintf("Recent input: %v", s.CommandLog[start:]))
	}
}

func (c *CLI) printEndStats() {
	c.printLine("")
	c.printLine("=== Final Statistics ===")
	c.printLines(c.Engine.StatusReport())
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Effects) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s", e.Type))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.typewrite(line)
	}
}

// typewrite prints a line one rune at a time, pacing output for dramatic
// effect. The delay blocks only presentation, never the engine.
func (c *CLI) typewrite(text string) {
	if c.TypewriterDelay <= 0 {
		c.printLine(text)
		return
	}
	for _, r := range text {
		fmt.Fprint(c.Out, string(r))
		time.Sleep(c.TypewriterDelay)
	}
	fmt.Fprintln(c.Out)
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
