package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/client"
)

// evalctl submits one compound to the analysis backend through the same
// flow the web frontend uses, prints the report and saves it as JSON.
func main() {
	backend := flag.String("backend", os.Getenv("BACKEND_URL"), "analysis backend base URL")
	output := flag.String("o", "", "output file (default <compound>_evaluation.json)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: evalctl [-backend URL] [-o FILE] <compound>")
		os.Exit(2)
	}
	compound := flag.Arg(0)

	store := client.NewStore()
	views := &consoleViews{store: store, output: *output}
	ctl := client.NewController(client.NewAnalysisClient(*backend, nil), store, views, views)

	fmt.Printf("Evaluating %s for cardiac fibrosis effects...\n", compound)
	ctl.Submit(context.Background(), compound)

	if views.failed {
		os.Exit(1)
	}
}

// consoleViews is the CLI's stand-in for the two screens: the result view
// renders from the store, the submit view only reports that nothing is there.
type consoleViews struct {
	store  *client.Store
	output string
	failed bool
}

func (v *consoleViews) ShowSubmit() {
	fmt.Println("No evaluation result available.")
}

func (v *consoleViews) ShowResult() {
	report := v.store.Get()
	if report == nil {
		v.ShowSubmit()
		return
	}

	line := strings.Repeat("-", 50)
	fmt.Println("\nEvaluation Results:")
	fmt.Println(line)
	fmt.Printf("Conclusion: %s\n", report.Conclusion)
	fmt.Printf("Relevance:  %d/100\n", report.Relevance)
	fmt.Printf("Confidence: %d/100\n", report.Confidence)
	fmt.Printf("Elapsed:    %s\n", report.Elapsed)
	fmt.Println(line)
	fmt.Println("Rationale:")
	fmt.Println(report.Rationale)
	fmt.Println(line)

	if err := v.save(report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save results: %v\n", err)
	}

	fmt.Println("\nAPI Requests:")
	for i, path := range report.ToolTrace.Lines() {
		fmt.Printf("%d. %s\n", i+1, path)
	}
}

func (v *consoleViews) Notify(message string) {
	v.failed = true
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

func (v *consoleViews) save(report *client.Report) error {
	path := v.output
	if path == "" {
		slug := strings.ToLower(strings.Join(strings.Fields(report.Compound), "_"))
		path = slug + "_evaluation.json"
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Printf("\nResults saved to %s\n", path)
	return nil
}
