package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqgen/internal/events"
	"github.com/abhisek/mcqgen/internal/llm"
)

var errLedgerDisabled = errors.New("request ledger is disabled (events-db is \"off\")")

func newLLMCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Inspect recorded LLM requests",
	}
	cmd.AddCommand(newLLMListCmd(env), newLLMViewCmd(env), newLLMStatsCmd(env))
	return cmd
}

// readLedger opens the request ledger for the inspection commands.
func (e *environment) readLedger() (*events.Store, error) {
	if !e.settings.EventsEnabled() {
		return nil, errLedgerDisabled
	}
	st, err := e.openLedger()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

func newLLMListCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			purpose, _ := cmd.Flags().GetString("purpose")

			st, err := env.readLedger()
			if err != nil {
				return err
			}
			records, err := st.QueryLLMEvents(cmd.Context(), events.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(w, "No LLM events found.")
				return nil
			}

			fmt.Fprintf(w, "%-5s  %-19s  %-13s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Fprintln(w, rule(100))
			for _, e := range records {
				ok := "✓"
				if !e.Success {
					ok = "✗"
				}
				fmt.Fprintf(w, "%-5d  %-19s  %-13s  %-28s  %-6d  %-6d  %-7d  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
					ok,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	cmd.Flags().StringP("purpose", "p", "", "Filter by purpose (generate, binary, similar, explain, prerequisites, translate)")
	return cmd
}

func newLLMViewCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "Show the full request and response of one LLM call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ID %q: %w", args[0], err)
			}

			st, err := env.readLedger()
			if err != nil {
				return err
			}
			e, err := st.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:        %d\n", e.ID)
			fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "Request:   %s\n", e.RequestID)
			fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
			fmt.Fprintf(w, "Model:     %s\n", e.Model)
			fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
			fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
			fmt.Fprintf(w, "Success:   %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
			}
			fmt.Fprintln(w)
			body(w, "REQUEST", e.RequestBody)
			body(w, "RESPONSE", e.ResponseBody)
			return nil
		},
	}
}

func body(w io.Writer, title, text string) {
	fmt.Fprintln(w, rule(60))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule(60))
	if text == "" {
		text = "(not captured)"
	}
	fmt.Fprintln(w, text)
}

func newLLMStatsCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show token usage and estimated cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := env.readLedger()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			stats, err := st.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(stats) == 0 {
				fmt.Fprintln(w, "No LLM usage recorded yet.")
				return nil
			}

			fmt.Fprintln(w, "Usage by Purpose")
			fmt.Fprintln(w, rule(72))
			fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
				"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
			fmt.Fprintln(w, rule(72))

			var calls, in, out int
			for _, s := range stats {
				fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
					s.Purpose, s.Calls, s.InputTokens, s.OutputTokens, s.InputTokens+s.OutputTokens, s.AvgLatencyMs)
				calls += s.Calls
				in += s.InputTokens
				out += s.OutputTokens
			}
			fmt.Fprintln(w, rule(72))
			fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)

			models, err := st.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(models) == 0 {
				return nil
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Estimated Cost (USD)")
			fmt.Fprintln(w, rule(72))
			fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
			fmt.Fprintln(w, rule(72))

			var total float64
			var unknown []string
			for _, m := range models {
				price := llm.LookupCost(m.Model)
				if price == nil {
					unknown = append(unknown, m.Model)
					fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
						truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, "?")
					continue
				}
				c := price.Cost(m.InputTokens, m.OutputTokens)
				total += c
				fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
					truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, formatCost(c))
			}

			fmt.Fprintln(w, rule(72))
			label := "TOTAL"
			if len(unknown) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
			if len(unknown) > 0 {
				fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
			}
			return nil
		},
	}
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
