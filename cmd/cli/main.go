package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/infrastructure/idgen"
	"github.com/iho/gopledge/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gopledge-cli",
		Short:         "GoPledge CLI tool",
		Long:          `Prices pledge campaigns locally with the default fee schedule and checks a running GoPledge server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	schedule := domain.DefaultFeeSchedule()
	quotes := usecase.NewQuoteUseCase(schedule, idgen.NewULIDGenerator())

	rootCmd.AddCommand(
		quoteCmd(quotes),
		boundsCmd(quotes),
		feesCmd(usecase.NewFeeUseCase(schedule)),
		previewCmd(usecase.NewCampaignUseCase(schedule, quotes)),
		outcomeCmd(usecase.NewCampaignUseCase(schedule, quotes)),
		healthCmd(),
	)

	return rootCmd
}

func quoteCmd(quotes *usecase.QuoteUseCase) *cobra.Command {
	var goal string
	var minimum, current int64

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a campaign form state",
		RunE: func(cmd *cobra.Command, args []string) error {
			fundingGoal, err := domain.ParseMoney(goal)
			if err != nil {
				return err
			}
			result, err := quotes.Quote(cmd.Context(), usecase.QuoteInput{
				FundingGoal:     fundingGoal,
				MinimumPledgers: minimum,
				CurrentPledgers: current,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Funding goal in dollars")
	cmd.Flags().Int64Var(&minimum, "minimum", 1, "Minimum number of pledgers")
	cmd.Flags().Int64Var(&current, "current", 0, "Current number of pledgers (defaults to the minimum)")
	cmd.MarkFlagRequired("goal")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("current") {
			current = minimum
		}
	}

	return cmd
}

func boundsCmd(quotes *usecase.QuoteUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <funding-goal>",
		Short: "Show the possible pledger counts for a funding goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := domain.ParseMoney(args[0])
			if err != nil {
				return err
			}
			result, err := quotes.Bounds(cmd.Context(), goal)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func feesCmd(fees *usecase.FeeUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "fees <amount>",
		Short: "Show every fee figure for an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := domain.ParseMoney(args[0])
			if err != nil {
				return err
			}
			table, err := fees.Fees(cmd.Context(), amount)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), table)
		},
	}
}

func previewCmd(campaigns *usecase.CampaignUseCase) *cobra.Command {
	var goal, reason string
	var minimum int64
	var deadline time.Duration

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Validate a campaign draft and price it at its minimum",
		RunE: func(cmd *cobra.Command, args []string) error {
			fundingGoal, err := domain.ParseMoney(goal)
			if err != nil {
				return err
			}
			result, err := campaigns.Preview(cmd.Context(), usecase.PreviewInput{
				FundingGoal:     fundingGoal,
				Reason:          reason,
				Deadline:        time.Now().Add(deadline),
				MinimumPledgers: minimum,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Funding goal in dollars")
	cmd.Flags().StringVar(&reason, "reason", "", "What the money is for")
	cmd.Flags().Int64Var(&minimum, "minimum", 1, "Minimum number of pledgers")
	cmd.Flags().DurationVar(&deadline, "deadline", 30*24*time.Hour, "Time until the deadline")
	cmd.MarkFlagRequired("goal")
	cmd.MarkFlagRequired("reason")

	return cmd
}

func outcomeCmd(campaigns *usecase.CampaignUseCase) *cobra.Command {
	var goal string
	var minimum, pledgers, hypothetical int64
	var succeeded bool

	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Price a stored campaign and a hypothetical final pledger count",
		RunE: func(cmd *cobra.Command, args []string) error {
			fundingGoal, err := domain.ParseMoney(goal)
			if err != nil {
				return err
			}
			out, err := campaigns.Outcome(cmd.Context(), usecase.OutcomeInput{
				Campaign: domain.CampaignSnapshot{
					FundingGoal:      fundingGoal,
					MinimumPledgers:  minimum,
					NumberOfPledgers: pledgers,
					Succeeded:        succeeded,
				},
				HypotheticalPledgers: hypothetical,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Funding goal in dollars")
	cmd.Flags().Int64Var(&minimum, "minimum", 1, "Minimum number of pledgers")
	cmd.Flags().Int64Var(&pledgers, "pledgers", 0, "Number of pledgers so far")
	cmd.Flags().BoolVar(&succeeded, "succeeded", false, "Campaign already succeeded")
	cmd.Flags().Int64Var(&hypothetical, "hypothetical", 0, "Hypothetical final pledger count (defaults to the minimum)")
	cmd.MarkFlagRequired("goal")

	return cmd
}

func healthCmd() *cobra.Command {
	var baseURL string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check a running server's readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkHealth(cmd.Context(), cmd.OutOrStdout(), baseURL, timeout)
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoPledge API")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	return cmd
}

func checkHealth(ctx context.Context, w io.Writer, baseURL string, timeout time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/ready", nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check FAILED (status: %d): %s", resp.StatusCode, body)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Fprintf(w, "Health check PASSED\n")
	fmt.Fprintf(w, "Status: %v\n", result["status"])
	if redis, ok := result["redis"]; ok {
		fmt.Fprintf(w, "Redis: %v\n", redis)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
