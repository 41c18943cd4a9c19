package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/ll1/ll"
	"github.com/npillmayer/ll1/ll/bnf"
	"github.com/npillmayer/ll1/ll/predictive"
	"github.com/npillmayer/ll1/ll/scanner"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/

const parenGrammar = `
<S> ::= "(" <L> ")" | "a"
<L> ::= <S> <L> | ""
`

// errQuit signals the end of the session.
var errQuit = errors.New("quit")

// main() starts an interactive CLI, where users may enter sentences of an
// LL(1) grammar. Every sentence is parsed and its parse tree is printed.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "Grammar file in BNF notation")
	initf := flag.String("init", "", "File with commands or sentences to run first")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to LL(1) REPL")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up grammar and parser
	intp, err := loadGrammar(*gfile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	intp.table.Grammar().Dump()                 // only visible in debug mode
	intp.printTable()
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if err := intp.Eval(input); err != nil {
			os.Exit(2)
		}
	}
	//
	// set up REPL
	repl, err := readline.New("ll1> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadGrammar reads a grammar from a file, or uses the parenthesis grammar
// if filename is empty, and builds its parse table. The grammar analysis is
// kept for the :first and :follow commands.
func loadGrammar(filename string) (*Intp, error) {
	var g *ll.Grammar
	var err error
	if filename == "" {
		g, err = bnf.Parse("Parens", parenGrammar)
	} else {
		var f *os.File
		if f, err = os.Open(filename); err != nil {
			return nil, err
		}
		defer f.Close()
		g, err = bnf.Read(filename, f)
	}
	if err != nil {
		return nil, err
	}
	ga, err := ll.Analysis(g)
	if err != nil {
		return nil, err
	}
	table, err := ll.NewTableGenerator(ga).CreateTable()
	if err != nil {
		return nil, err
	}
	return &Intp{
		table:  table,
		ga:     ga,
		parser: predictive.NewParser(table),
	}, nil
}

// Intp is our interpreter object
type Intp struct {
	table    *ll.Table
	ga       *ll.LLAnalysis
	parser   *predictive.Parser
	repl     *readline.Instance
	lastTree *predictive.Tree
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	lines := bufio.NewScanner(f)
	lineno := 0
	for lines.Scan() {
		lineno++
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}
		if err := intp.Eval(line); err != nil && !errors.Is(err, errQuit) {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := lines.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err = intp.Eval(line); errors.Is(err, errQuit) {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a sentence, given on a line by itself.
// Errors are printed before being returned.
func (intp *Intp) Eval(line string) error {
	err := intp.eval(line)
	if err != nil && !errors.Is(err, errQuit) {
		pterm.Error.Println(err.Error())
	}
	return err
}

func (intp *Intp) eval(line string) error {
	if !strings.HasPrefix(line, ":") {
		return intp.parse(line)
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return errQuit
	case ":table":
		intp.printTable()
	case ":rules":
		for _, r := range intp.table.Grammar().Rules() {
			pterm.Printf("%3d  %v\n", r.Serial, r)
		}
	case ":first", ":follow":
		if len(args) != 2 {
			return fmt.Errorf("usage: %s <non-terminal>", args[0])
		}
		A, err := intp.nonTerminal(args[1])
		if err != nil {
			return err
		}
		if args[0] == ":first" {
			pterm.Info.Printf("FIRST(%v) = %v\n", A, intp.ga.FirstOf(A))
		} else {
			pterm.Info.Printf("FOLLOW(%v) = %v\n", A, intp.ga.Follow(A))
		}
	default:
		return fmt.Errorf("unknown command %s", args[0])
	}
	return nil
}

// nonTerminal accepts non-terminal names with or without angle brackets.
func (intp *Intp) nonTerminal(name string) (ll.NonTerminal, error) {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">")
	for _, A := range intp.table.Grammar().NonTerminals() {
		if A.Name == name {
			return A, nil
		}
	}
	return ll.NonTerminal{}, fmt.Errorf("grammar has no non-terminal %s", name)
}

func (intp *Intp) parse(input string) error {
	tracer().Infof("----------------------- Parse ------------------------------------")
	tree, err := intp.parser.ParseString(input, scanner.SkipSpace(true))
	if err != nil {
		return err
	}
	intp.lastTree = tree
	tracer().Debugf("derivation = %v", tree.Derivation())
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledTree(tree))).Render()
	pterm.Info.Printf("accepted %q\n", tree.Yield())
	return nil
}

func (intp *Intp) printTable() {
	header := []string{""}
	for _, la := range intp.table.Lookaheads() {
		header = append(header, la.String())
	}
	data := pterm.TableData{header}
	data = append(data, intp.table.Rows()...)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// leveledTree flattens a parse tree into a pterm leveled list, in pre-order.
func leveledTree(tree *predictive.Tree) pterm.LeveledList {
	var list pterm.LeveledList
	var walk func(id, level int)
	walk = func(id, level int) {
		node := tree.Node(id)
		text := node.Symbol.String()
		if node.Symbol.IsNonTerminal() && len(node.Children) == 0 {
			text += " ➞ ε"
		}
		list = append(list, pterm.LeveledListItem{Level: level, Text: text})
		for _, ch := range node.Children {
			walk(ch, level+1)
		}
	}
	if tree.Size() > 0 {
		walk(tree.Root(), 0)
	}
	return list
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
