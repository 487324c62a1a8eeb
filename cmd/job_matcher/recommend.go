package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/engine"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/recommend"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/types"
)

type recommendFlags struct {
	poolFile string
	outFile  string
	topK     int
	maxPool  int
}

func (f *recommendFlags) register(cmd *cobra.Command, defaultTopK int) {
	cmd.Flags().StringVar(&f.poolFile, "pool", "", "Path to the JSON pool file")
	cmd.Flags().IntVar(&f.topK, "top-k", defaultTopK, "Number of results")
	cmd.Flags().IntVar(&f.maxPool, "max-pool", 0, "Score at most this many pool entries (0 uses the configured cap)")
	cmd.Flags().StringVarP(&f.outFile, "out", "o", "", "Write JSON here instead of stdout")
	_ = cmd.MarkFlagRequired("pool")
}

func (f *recommendFlags) options(eng *engine.Engine) recommend.Options {
	return eng.RecommendOptions(recommend.Options{TopK: f.topK, MaxPool: f.maxPool})
}

func newRecommendCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank a pool of jobs or candidates",
	}
	cmd.AddCommand(newRecommendJobsCmd(a), newRecommendCandidatesCmd(a))
	return cmd
}

func newRecommendJobsCmd(a *app) *cobra.Command {
	var profileFile string
	var flags recommendFlags

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Rank jobs for a candidate profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var profile types.CandidateProfile
			if err := readValidated(schemas.CandidateProfile, profileFile, &profile); err != nil {
				return err
			}
			var jobs []types.JobPosting
			if err := readValidated(schemas.JobPool, flags.poolFile, &jobs); err != nil {
				return err
			}

			ctx := commandContext(cmd)
			eng, err := engine.Build(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			rec, err := eng.Pipeline.RecommendJobs(ctx, profile, jobs, flags.options(eng))
			if err != nil {
				return err
			}
			if a.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendation("TOP JOBS", rec)
			}
			return writeJSON(cmd.OutOrStdout(), flags.outFile, rec)
		},
	}
	cmd.Flags().StringVar(&profileFile, "profile", "", "Path to the candidate profile JSON file")
	_ = cmd.MarkFlagRequired("profile")
	flags.register(cmd, recommend.DefaultJobsTopK)
	return cmd
}

func newRecommendCandidatesCmd(a *app) *cobra.Command {
	var jobFile string
	var flags recommendFlags

	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Rank candidates for a job posting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var job types.JobPosting
			if err := readValidated(schemas.JobPosting, jobFile, &job); err != nil {
				return err
			}
			var candidates []types.CandidateProfile
			if err := readValidated(schemas.CandidatePool, flags.poolFile, &candidates); err != nil {
				return err
			}

			ctx := commandContext(cmd)
			eng, err := engine.Build(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			rec, err := eng.Pipeline.RecommendCandidates(ctx, job, candidates, flags.options(eng))
			if err != nil {
				return err
			}
			if a.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendation("TOP CANDIDATES", rec)
			}
			return writeJSON(cmd.OutOrStdout(), flags.outFile, rec)
		},
	}
	cmd.Flags().StringVar(&jobFile, "job", "", "Path to the job posting JSON file")
	_ = cmd.MarkFlagRequired("job")
	flags.register(cmd, recommend.DefaultCandidatesTopK)
	return cmd
}

// readValidated checks a file against its schema before decoding it into dst
func readValidated(kind schemas.Kind, path string, dst any) error {
	data, err := schemas.ValidateFile(kind, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
