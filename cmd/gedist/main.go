// Command gedist is the CLI surface of spec.md §6: it loads a rewrite
// catalogue and an optional case-fold file, computes a generalized edit
// distance between a search string and every entry of a dictionary file,
// and reports either every entry within a threshold (-m) or the N
// best-scoring entries (-b).
//
// Usage:
//
//	gedist [-lawy] [-e] [-f|-p|-s|-i] (-m THRESHOLD | -b N) CATALOGUE SEARCH DICTIONARY [CASEMAP]
//
// Flags (clustered, e.g. "-lpi", matching the original tool's
// getopt(argc, argv, "b:m:elpisf?awy") grammar):
//
//	-m THRESHOLD  threshold mode: print every entry scoring <= THRESHOLD
//	-b N          top-N mode: print the N best-scoring entries
//	-f -p -s -i   match shape: full (default), prefix, suffix, infix
//	-e            case-insensitive matching
//	-l            prefix each output line with its dictionary line number
//	-a            print alignments (threshold mode, single shape only)
//	-w            include per-edit weights in printed alignments
//	-y            pad alignment columns for readability
//	-?            print usage and exit
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/soras/genedist"
)

var logger = log.New(os.Stdout, "", log.Ldate|log.Ltime)

type options struct {
	mode      string // "threshold" or "topn"
	threshold float64
	topN      int

	shape genedist.Shape

	caseInsensitive bool
	lineNumbers     bool
	alignments      bool
	weights         bool
	pretty          bool

	catalogue string
	search    string
	dict      string
	caseMap   string
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		color.Red("gedist: %v", err)
		usage()
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		color.Red("gedist: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gedist [-lawy] [-e] [-f|-p|-s|-i] (-m THRESHOLD | -b N) CATALOGUE SEARCH DICTIONARY [CASEMAP]")
}

func parseArgs(args []string) (options, error) {
	opts := options{shape: genedist.Full}
	haveMode := false
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-?":
			usage()
			os.Exit(0)
		case strings.HasPrefix(arg, "-m"):
			if opts.mode == "topn" {
				return opts, fmt.Errorf("%w: exactly one of -m or -b is required", genedist.ErrInvalidArguments)
			}
			val, err := flagValue(arg, "-m", args, &i)
			if err != nil {
				return opts, err
			}
			t, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return opts, fmt.Errorf("%w: bad -m value %q", genedist.ErrInvalidArguments, val)
			}
			opts.mode, opts.threshold, haveMode = "threshold", t, true
		case strings.HasPrefix(arg, "-b"):
			if opts.mode == "threshold" {
				return opts, fmt.Errorf("%w: exactly one of -m or -b is required", genedist.ErrInvalidArguments)
			}
			val, err := flagValue(arg, "-b", args, &i)
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("%w: bad -b value %q", genedist.ErrInvalidArguments, val)
			}
			opts.mode, opts.topN, haveMode = "topn", n, true
		case strings.HasPrefix(arg, "-"):
			if err := applyBooleanFlags(&opts, arg[1:]); err != nil {
				return opts, err
			}
		default:
			positional = append(positional, arg)
		}
	}

	if !haveMode {
		return opts, fmt.Errorf("%w: exactly one of -m or -b is required", genedist.ErrInvalidArguments)
	}
	if len(positional) < 3 || len(positional) > 4 {
		return opts, fmt.Errorf("%w: expected CATALOGUE SEARCH DICTIONARY [CASEMAP]", genedist.ErrInvalidArguments)
	}
	opts.catalogue, opts.search, opts.dict = positional[0], positional[1], positional[2]
	if len(positional) == 4 {
		opts.caseMap = positional[3]
	}
	if opts.alignments && opts.mode != "threshold" {
		return opts, fmt.Errorf("%w: -a requires -m", genedist.ErrInvalidArguments)
	}
	return opts, nil
}

// flagValue extracts an argument value for a flag that may be written
// either fused onto the flag ("-m0.5") or as a separate token ("-m 0.5").
func flagValue(arg, flag string, args []string, i *int) (string, error) {
	if rest := strings.TrimPrefix(arg, flag); rest != "" {
		return rest, nil
	}
	if *i+1 >= len(args) {
		return "", fmt.Errorf("%w: %s requires a value", genedist.ErrInvalidArguments, flag)
	}
	*i++
	return args[*i], nil
}

func applyBooleanFlags(opts *options, letters string) error {
	for _, r := range letters {
		switch r {
		case 'f':
			opts.shape = genedist.Full
		case 'p':
			opts.shape = genedist.Prefix
		case 's':
			opts.shape = genedist.Suffix
		case 'i':
			opts.shape = genedist.Infix
		case 'e':
			opts.caseInsensitive = true
		case 'l':
			opts.lineNumbers = true
		case 'a':
			opts.alignments = true
		case 'w':
			opts.weights = true
		case 'y':
			opts.pretty = true
		default:
			return fmt.Errorf("%w: unknown flag -%c", genedist.ErrInvalidArguments, r)
		}
	}
	return nil
}

func run(opts options) error {
	start := time.Now()

	var fold *genedist.CaseMap
	if opts.caseInsensitive {
		cm, err := genedist.LoadCaseMap(opts.caseMap)
		if err != nil {
			return err
		}
		fold = cm
	}

	logger.Printf("loading catalogue %s...", opts.catalogue)
	cat, err := genedist.LoadCatalogue(opts.catalogue, fold)
	if err != nil {
		return err
	}
	engine := genedist.NewEngine(cat, fold)
	logger.Printf("catalogue loaded in %s", time.Since(start))

	dict, err := os.Open(opts.dict)
	if err != nil {
		return fmt.Errorf("%w: opening dictionary %q: %v", genedist.ErrIO, opts.dict, err)
	}
	defer dict.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch opts.mode {
	case "threshold":
		matches, err := engine.ScanThreshold(dict, opts.search, opts.threshold, []genedist.Shape{opts.shape}, nil, nil, opts.alignments)
		if err != nil {
			return err
		}
		for _, m := range matches {
			printMatch(out, opts, m)
		}
	case "topn":
		entries, err := engine.ScanTopN(dict, opts.search, opts.topN, opts.shape, nil, nil)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if opts.lineNumbers {
				fmt.Fprintf(out, "%d\t%s\t%g\n", e.Line, e.Text, e.Score)
			} else {
				fmt.Fprintf(out, "%s\t%g\n", e.Text, e.Score)
			}
		}
	}

	color.HiGreen("done in %s", time.Since(start))
	return nil
}

func printMatch(out *bufio.Writer, opts options, m genedist.DictMatch) {
	if opts.lineNumbers {
		fmt.Fprintf(out, "%d\t%s\t%g\n", m.Line, m.Text, m.Scores[opts.shape])
	} else {
		fmt.Fprintf(out, "%s\t%g\n", m.Text, m.Scores[opts.shape])
	}
	for _, path := range m.Paths {
		out.WriteString(genedist.RenderAlignment(path, opts.weights, opts.pretty))
	}
}
