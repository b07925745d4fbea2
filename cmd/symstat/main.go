// Symstat interns every token of its inputs and reports deduplication
// statistics. It doubles as a stress harness for the symbol package: all
// files are tokenized concurrently against the shared intern table.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/symbol"

	_ "github.com/tliron/commonlog/simple"
)

// maxTokenSize bounds a single token (or line) at 16 MiB.
const maxTokenSize = 16 * 1024 * 1024

func main() {
	configPath := flag.String("config", "", "Path to a symstat.toml (default: ./symstat.toml if present)")
	mode := flag.String("mode", "", "Tokenize mode: words or lines (overrides config)")
	top := flag.Int("top", 0, "Number of most frequent tokens to report (overrides config)")
	jsonOut := flag.Bool("json", false, "Emit the report as JSON")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: symstat [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Interns every token from the given files (or stdin) and reports\n")
		fmt.Fprintf(os.Stderr, "deduplication statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  symstat access.log              # Word frequencies for one file\n")
		fmt.Fprintf(os.Stderr, "  symstat -mode lines *.csv       # Duplicate lines across files\n")
		fmt.Fprintf(os.Stderr, "  symstat -json -top 50 data.txt  # Machine-readable report\n")
	}
	flag.Parse()

	verbosity := 1
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("symstat")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Input.Mode = *mode
	}
	if *top > 0 {
		cfg.Report.Top = *top
	}
	if *jsonOut {
		cfg.Report.JSON = true
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c := &counter{counts: make(map[symbol.Symbol]int)}

	paths := flag.Args()
	if len(paths) == 0 {
		log.Info("reading from stdin")
		if err := scanInput(os.Stdin, cfg, c); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for _, path := range paths {
			g.Go(func() error {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := scanInput(f, cfg, c); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				log.Infof("scanned %s", path)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	files := len(paths)
	if files == 0 {
		files = 1
	}
	rep := buildReport(files, c, cfg)

	if cfg.Report.JSON {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else {
		printReport(rep)
	}
}

// scanInput tokenizes r per the config and interns every token straight
// from the scanner's buffer: InternBytes copies only on a miss, so
// recurring tokens cost no allocation here.
func scanInput(r io.Reader, cfg *Config, c *counter) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	if cfg.Input.Mode == "words" {
		sc.Split(bufio.ScanWords)
	}
	for sc.Scan() {
		tok := sc.Bytes()
		if len(tok) < cfg.Input.MinLength {
			continue
		}
		c.add(symbol.InternBytes(tok))
	}
	return sc.Err()
}

// ---------------------------------------------------------------------------
// Counting and reporting
// ---------------------------------------------------------------------------

// counter accumulates token frequencies across goroutines. The map holds
// one owned handle per distinct token; duplicate handles are released.
type counter struct {
	mu     sync.Mutex
	counts map[symbol.Symbol]int
	tokens int
}

func (c *counter) add(sym symbol.Symbol) {
	c.mu.Lock()
	c.counts[sym]++
	if c.counts[sym] > 1 {
		// The map already owns a handle for this token; drop the extra.
		sym.Release()
	}
	c.tokens++
	c.mu.Unlock()
}

// Report is the machine-readable output of one run.
type Report struct {
	Files      int          `json:"files"`
	Tokens     int          `json:"tokens"`
	Unique     int          `json:"unique"`
	BytesSaved int          `json:"bytes_saved"`
	Top        []TokenCount `json:"top,omitempty"`
	Table      symbol.Stats `json:"table"`
}

// TokenCount pairs a token with its frequency.
type TokenCount struct {
	Token symbol.Symbol `json:"token"`
	Count int           `json:"count"`
}

// buildReport ranks tokens by frequency and summarizes table state.
// BytesSaved counts the bytes that shared allocations deduplicate: tokens
// at or under the inline capacity are excluded, they are never shared.
func buildReport(files int, c *counter, cfg *Config) *Report {
	ranked := make([]TokenCount, 0, len(c.counts))
	saved := 0
	for sym, count := range c.counts {
		ranked = append(ranked, TokenCount{Token: sym, Count: count})
		if count > 1 && sym.Len() > symbol.SmallCap {
			saved += (count - 1) * sym.Len()
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Token.Less(ranked[j].Token)
	})
	if len(ranked) > cfg.Report.Top {
		ranked = ranked[:cfg.Report.Top]
	}

	return &Report{
		Files:      files,
		Tokens:     c.tokens,
		Unique:     len(c.counts),
		BytesSaved: saved,
		Top:        ranked,
		Table:      symbol.TableStats(),
	}
}

func printReport(r *Report) {
	fmt.Printf("Files:       %d\n", r.Files)
	fmt.Printf("Tokens:      %d\n", r.Tokens)
	fmt.Printf("Unique:      %d\n", r.Unique)
	fmt.Printf("Bytes saved: %d\n", r.BytesSaved)
	fmt.Printf("Table:       %d shared, %d static, %d buckets\n",
		r.Table.Shared, r.Table.Static, r.Table.Buckets)
	if len(r.Top) > 0 {
		fmt.Println("\nTop tokens:")
		for _, tc := range r.Top {
			fmt.Printf("  %7d  %s\n", tc.Count, tc.Token)
		}
	}
}
