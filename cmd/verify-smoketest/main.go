// verify-smoketest runs the verification pipeline end to end without any
// external service: providers stay disabled so both fallbacks execute, the
// cache and report store live in memory, and the finished report is printed
// as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/realorrender/realorrender/src/adjudicator"
	"github.com/realorrender/realorrender/src/analyzer"
	"github.com/realorrender/realorrender/src/cache"
	"github.com/realorrender/realorrender/src/extract"
	"github.com/realorrender/realorrender/src/scoring"
	"github.com/realorrender/realorrender/src/types"
	"github.com/realorrender/realorrender/src/verify"
)

var (
	urlFlag     = flag.String("url", "", "Article URL to verify")
	textFlag    = flag.String("text", "", "Raw article text ('-' reads stdin)")
	timeoutFlag = flag.Duration("timeout", 30*time.Second, "Overall run timeout")
)

type memReports struct {
	mu      sync.Mutex
	reports map[string]*types.VerificationReport
}

func (m *memReports) Put(_ context.Context, id string, report *types.VerificationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[id] = report
	return nil
}

func (m *memReports) Get(_ context.Context, id string) (*types.VerificationReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	rawText := *textFlag
	if rawText == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("read stdin: %v", err)
		}
		rawText = string(b)
	}
	if *urlFlag == "" && rawText == "" {
		log.Fatal("provide -url or -text")
	}

	pipeline := &verify.Pipeline{
		Extractor:   extract.New(0),
		Analyzer:    analyzer.New(nil),
		Adjudicator: adjudicator.New(nil, cache.NewMemoryStore()),
		Reports:     &memReports{reports: make(map[string]*types.VerificationReport)},
		Policy:      scoring.DefaultPolicy(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	report, err := pipeline.Run(ctx, *urlFlag, rawText)
	if err != nil {
		log.Fatalf("verification failed: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Println(string(out))
}
