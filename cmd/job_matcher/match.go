package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/engine"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/types"
)

type matchOutput struct {
	Features      types.FeatureBundle `json:"matching_details"`
	EnsembleScore float64             `json:"ensemble_score"`
	Explanation   string              `json:"explanation"`
}

func newMatchCmd(a *app) *cobra.Command {
	var resumeFile, jobFile, outFile string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score one resume against one job description",
		Long:  "Score a plain text or HTML resume against a job description and print the signal breakdown as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resume, err := os.ReadFile(resumeFile)
			if err != nil {
				return fmt.Errorf("failed to read resume: %w", err)
			}
			job, err := os.ReadFile(jobFile)
			if err != nil {
				return fmt.Errorf("failed to read job: %w", err)
			}

			out, err := a.match(commandContext(cmd), string(resume), string(job))
			if err != nil {
				return err
			}
			if a.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintMatch(
					types.MatchScore{Features: out.Features, EnsembleScore: out.EnsembleScore}, out.Explanation)
			}
			return writeJSON(cmd.OutOrStdout(), outFile, out)
		},
	}
	cmd.Flags().StringVar(&resumeFile, "resume", "", "Path to the resume text file")
	cmd.Flags().StringVar(&jobFile, "job", "", "Path to the job description text file")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write JSON here instead of stdout")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func (a *app) match(ctx context.Context, resume, job string) (*matchOutput, error) {
	eng, err := engine.Build(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	bundle, err := eng.Scorer.ScorePair(ctx, resume, job)
	if err != nil {
		return nil, err
	}
	ensemble := ranking.EnsembleScore(bundle, eng.Weights)
	return &matchOutput{
		Features:      bundle,
		EnsembleScore: ensemble,
		Explanation:   ranking.Explain(types.MatchScore{Features: bundle, EnsembleScore: ensemble, FinalScore: ensemble}),
	}, nil
}

// writeJSON writes v indented to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
