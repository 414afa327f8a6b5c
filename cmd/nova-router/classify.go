// ABOUTME: "classify" subcommand: label args or stdin lines, optionally in parallel
// ABOUTME: Output as plain labels, JSON lines, or markdown decision traces

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mauromedda/nova-router/internal/intent"
	nrlog "github.com/mauromedda/nova-router/internal/log"
)

// maxLineBytes bounds one stdin line.
const maxLineBytes = 1 << 20

type classifyOptions struct {
	selection   bool
	noAI        bool
	jsonOut     bool
	explain     bool
	model       string
	baseURL     string
	concurrency int
}

// jsonRecord is one line of --json output.
type jsonRecord struct {
	Input string `json:"input"`
	intent.Result
}

func newClassifyCmd(root *rootOptions) *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify text given as arguments, or each line of stdin",
		Example: `  nova-router classify "make this paragraph shorter"
  nova-router classify --no-ai --explain "add tags: draft"
  cat inputs.txt | nova-router classify --json --concurrency 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, root, opts, args)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.selection, "selection", false, "treat the host as having an active text selection")
	f.BoolVar(&opts.noAI, "no-ai", false, "skip the model and use the rule cascade only")
	f.BoolVar(&opts.jsonOut, "json", false, "print one JSON object per input")
	f.BoolVar(&opts.explain, "explain", false, "print a decision trace for each input")
	f.StringVar(&opts.model, "model", "", "model ID or provider:model (overrides config)")
	f.StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides config)")
	f.IntVar(&opts.concurrency, "concurrency", 4, "inputs classified in parallel (0 = unbounded)")
	cmd.MarkFlagsMutuallyExclusive("json", "explain")

	return cmd
}

func runClassify(cmd *cobra.Command, root *rootOptions, opts *classifyOptions, args []string) error {
	if opts.concurrency < 0 {
		return fmt.Errorf("--concurrency must not be negative, got %d", opts.concurrency)
	}

	s, err := root.loadSettings()
	if err != nil {
		return err
	}
	clf, backend, err := buildClassifier(s, classifierOptions{
		noAI:    opts.noAI,
		model:   opts.model,
		baseURL: opts.baseURL,
	})
	if err != nil {
		return err
	}
	nrlog.Debug("classifier backend: %s", backend)

	texts, err := collectInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	items := make([]intent.BatchItem, len(texts))
	for i, t := range texts {
		items[i] = intent.BatchItem{Text: t, Selection: opts.selection}
	}
	results := clf.ClassifyBatch(cmd.Context(), items, opts.concurrency)

	return writeResults(cmd.OutOrStdout(), texts, results, opts)
}

// collectInputs joins args into one input, or reads one input per non-blank
// stdin line when there are no args.
func collectInputs(stdin io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var texts []string
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		texts = append(texts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return texts, nil
}

func writeResults(w io.Writer, texts []string, results []intent.Result, opts *classifyOptions) error {
	styled, width := terminalWidth(w)

	switch {
	case opts.jsonOut:
		enc := json.NewEncoder(w)
		for i, r := range results {
			if err := enc.Encode(jsonRecord{Input: texts[i], Result: r}); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
		}
	case opts.explain:
		for i, r := range results {
			md := explainMarkdown(texts[i], r)
			if styled {
				md = renderMarkdown(md, width)
			}
			if _, err := fmt.Fprintln(w, md); err != nil {
				return err
			}
		}
	case len(results) == 1:
		label := results[0].Intent.String()
		if styled {
			label = labelStyles[results[0].Intent].Render(label)
		}
		if _, err := fmt.Fprintln(w, label); err != nil {
			return err
		}
	default:
		for i, r := range results {
			if _, err := fmt.Fprintf(w, "%s %s %s\n", formatLabel(r.Intent, styled), formatSource(r, styled), texts[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
