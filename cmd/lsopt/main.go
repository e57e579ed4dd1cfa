package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/lsopt/eval"
	"github.com/wippyai/lsopt/ir"
	"github.com/wippyai/lsopt/irtext"
	"github.com/wippyai/lsopt/opt"
)

func main() {
	var (
		irFile      = flag.String("f", "", "Path to a textual IR file to optimize")
		argsStr     = flag.String("args", "", "Block inputs (comma-separated integers)")
		scenarioSrc = flag.String("scenarios", "", "TOML file with demo scenarios (default: built-ins)")
		demoName    = flag.String("demo", "", "Run a single scenario by name")
		list        = flag.Bool("list", false, "List scenarios and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log optimization decisions")
		noColor     = flag.Bool("no-color", false, "Disable styled output")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		opt.SetLogger(logger)
	}

	p := &printer{styled: !*noColor && term.IsTerminal(int(os.Stdout.Fd()))}

	if err := run(*irFile, *argsStr, *scenarioSrc, *demoName, *list, *interactive, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(irFile, argsStr, scenarioSrc, demoName string, list, interactive bool, p *printer) error {
	if irFile != "" {
		return runFile(irFile, argsStr, p)
	}

	scenarios := builtinScenarios
	if scenarioSrc != "" {
		loaded, err := loadScenarios(scenarioSrc)
		if err != nil {
			return err
		}
		scenarios = loaded
	}

	switch {
	case list:
		for _, sc := range scenarios {
			fmt.Println(sc.Name)
		}
		return nil
	case interactive:
		return runInteractive(scenarios)
	case demoName != "":
		sc, ok := findScenario(scenarios, demoName)
		if !ok {
			return fmt.Errorf("no scenario named %q (use -list)", demoName)
		}
		return runScenario(sc, p)
	default:
		for i, sc := range scenarios {
			if i > 0 {
				fmt.Println()
			}
			if err := runScenario(sc, p); err != nil {
				return err
			}
		}
		return nil
	}
}

// runFile optimizes one textual IR file and prints the comparison.
func runFile(path, argsStr string, p *printer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	args, err := parseArgs(argsStr)
	if err != nil {
		return err
	}
	return runScenario(Scenario{Name: path, Args: args, Source: string(data)}, p)
}

func parseArgs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	var args []int64
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad -args entry %q: %w", part, err)
		}
		args = append(args, n)
	}
	return args, nil
}

// runScenario parses, optimizes, and executes one scenario, printing the
// before/after listings and the escaped values of both runs.
func runScenario(sc Scenario, p *printer) error {
	b, err := irtext.Parse(sc.Source)
	if err != nil {
		return err
	}
	out, err := opt.Optimize(b)
	if err != nil {
		return err
	}

	p.title("Scenario: " + sc.Name)
	if sc.Note != "" {
		p.note(sc.Note)
	}
	p.listing("before", irtext.Format(b))
	p.listing(fmt.Sprintf("after (%d of %d instructions removed)", b.Len()-out.Len(), b.Len()), irtext.Format(out))

	args := scenarioInputs(b, sc.Args)
	orig, err := eval.Run(b, args)
	if err != nil {
		return err
	}
	opti, err := eval.Run(out, args)
	if err != nil {
		return err
	}

	p.listing("escaped values", formatWords(orig.Escaped))
	if wordsEqual(orig.Escaped, opti.Escaped) {
		p.ok("optimized block escapes identical values")
	} else {
		p.fail(fmt.Sprintf("OPTIMIZED BLOCK DIVERGES: %s", formatWords(opti.Escaped)))
	}
	return nil
}

// scenarioInputs turns declared args into words, padding to the block's
// input count with distinct opaque integers.
func scenarioInputs(b *ir.Block, declared []int64) []eval.Word {
	args := make([]eval.Word, eval.InputCount(b))
	for i := range args {
		if i < len(declared) {
			args[i] = eval.Int(declared[i])
		} else {
			args[i] = eval.Int(int64(1000 + i))
		}
	}
	return args
}

func formatWords(words []eval.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.String()
	}
	return strings.Join(parts, ", ")
}

func wordsEqual(a, b []eval.Word) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// printer writes sections to stdout, styled when attached to a terminal.
type printer struct {
	styled bool
}

var (
	plainTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func (p *printer) paint(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *printer) title(s string) {
	fmt.Println(p.paint(plainTitleStyle, s))
}

func (p *printer) note(s string) {
	fmt.Println(p.paint(noteStyle, s))
}

func (p *printer) listing(heading, body string) {
	fmt.Println(p.paint(headingStyle, heading+":"))
	if body == "" {
		body = "(empty)"
	}
	for _, line := range strings.Split(body, "\n") {
		fmt.Println("  " + line)
	}
}

func (p *printer) ok(s string) {
	fmt.Println(p.paint(okStyle, "✓ "+s))
}

func (p *printer) fail(s string) {
	fmt.Println(p.paint(failStyle, "✗ "+s))
}
