package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/TudorHulban/bankers"
	"github.com/spf13/cobra"
)

const (
	flagFile      = "file"
	flagProcess   = "process"
	flagRequest   = "request"
	flagWrite     = "write"
	flagVerbose   = "verbose"
	flagProcesses = "processes"
	flagResources = "resources"
	flagSeed      = "seed"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bankers",
		Short:         "Deadlock avoidance with the Banker's algorithm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool(flagVerbose, false, "Log debug details to stderr")

	rootCmd.AddCommand(
		newCheckCmd(),
		newRequestCmd(),
		newTerminateCmd(),
		newDetectCmd(),
		newRecoverCmd(),
		newGenerateCmd(),
	)

	return rootCmd
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo

	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		level = slog.LevelDebug
	}

	return slog.New(
		slog.NewTextHandler(
			cmd.ErrOrStderr(),
			&slog.HandlerOptions{
				Level: level,
			},
		),
	)
}

func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flagFile, "f", "", "Scenario file (YAML)")
	_ = cmd.MarkFlagRequired(flagFile)
}

func addWriteFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(flagWrite, false, "Write the resulting state back to the scenario file")
}

func loadBanker(cmd *cobra.Command) (*bankers.Banker, *bankers.Scenario, error) {
	path, errFlag := cmd.Flags().GetString(flagFile)
	if errFlag != nil {
		return nil, nil, errFlag
	}

	scenario, errRead := bankers.ReadScenarioFile(path)
	if errRead != nil {
		return nil, nil, errRead
	}

	banker, errCr := bankers.NewBanker(
		&scenario.ParamsNewState,
		bankers.WithLogger(newLogger(cmd)),
	)
	if errCr != nil {
		return nil, nil, errCr
	}

	return banker, scenario, nil
}

func writeBack(cmd *cobra.Command, banker *bankers.Banker, scenario *bankers.Scenario) error {
	if write, _ := cmd.Flags().GetBool(flagWrite); !write {
		return nil
	}

	path, _ := cmd.Flags().GetString(flagFile)

	return bankers.NewScenario(banker.Snapshot(), scenario.Pending).WriteFile(path)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print the state and its safe sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			banker, _, errLoad := loadBanker(cmd)
			if errLoad != nil {
				return errLoad
			}

			state := banker.Snapshot()
			renderState(cmd.OutOrStdout(), state)
			renderSafety(cmd.OutOrStdout(), state, banker.CheckSafety())

			return nil
		},
	}

	addFileFlag(cmd)

	return cmd
}

func toInt64(values []int) []int64 {
	result := make([]int64, len(values))

	for ix, value := range values {
		result[ix] = int64(value)
	}

	return result
}

func newRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Ask for resources on behalf of a process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			process, _ := cmd.Flags().GetInt(flagProcess)
			request, _ := cmd.Flags().GetIntSlice(flagRequest)

			banker, scenario, errLoad := loadBanker(cmd)
			if errLoad != nil {
				return errLoad
			}

			response, errRequest := banker.Request(process, toInt64(request))
			if errRequest != nil {
				return errRequest
			}

			fmt.Fprintln(cmd.OutOrStdout(), response.String())

			if !response.Granted {
				return nil
			}

			renderState(cmd.OutOrStdout(), banker.Snapshot())

			return writeBack(cmd, banker, scenario)
		},
	}

	addFileFlag(cmd)
	addWriteFlag(cmd)

	cmd.Flags().IntP(flagProcess, "p", 0, "Process index")
	cmd.Flags().IntSliceP(flagRequest, "r", nil, "Requested units per resource, e.g. 1,0,2")
	_ = cmd.MarkFlagRequired(flagProcess)
	_ = cmd.MarkFlagRequired(flagRequest)

	return cmd
}

func newTerminateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terminate",
		Short: "Terminate a process and reclaim what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			process, _ := cmd.Flags().GetInt(flagProcess)

			banker, scenario, errLoad := loadBanker(cmd)
			if errLoad != nil {
				return errLoad
			}

			freed, errTerminate := banker.Terminate(process)
			if errTerminate != nil {
				return errTerminate
			}

			state := banker.Snapshot()

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s terminated, freed %v\n",
				state.ProcessName(process),
				freed,
			)

			renderState(cmd.OutOrStdout(), state)
			renderSafety(cmd.OutOrStdout(), state, banker.CheckSafety())

			return writeBack(cmd, banker, scenario)
		},
	}

	addFileFlag(cmd)
	addWriteFlag(cmd)

	cmd.Flags().IntP(flagProcess, "p", 0, "Process index")
	_ = cmd.MarkFlagRequired(flagProcess)

	return cmd
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect deadlocked processes from the scenario's pending requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			banker, scenario, errLoad := loadBanker(cmd)
			if errLoad != nil {
				return errLoad
			}

			if scenario.Pending == nil {
				return errors.New("scenario has no pending matrix")
			}

			deadlocked, errDetect := banker.DetectDeadlock(scenario.Pending)
			if errDetect != nil {
				return errDetect
			}

			if len(deadlocked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no deadlock")

				return nil
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"deadlocked: %s\n",
				processNames(banker.Snapshot(), deadlocked),
			)

			return nil
		},
	}

	addFileFlag(cmd)

	return cmd
}

func newRecoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Terminate processes until the state is safe, or free of deadlock with pending requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			banker, scenario, errLoad := loadBanker(cmd)
			if errLoad != nil {
				return errLoad
			}

			response, errRecover := banker.Recover(scenario.Pending)
			if errRecover != nil {
				return errRecover
			}

			state := banker.Snapshot()

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"terminated: %s, freed %v\n",
				processNames(state, response.Terminated),
				response.Freed,
			)

			renderState(cmd.OutOrStdout(), state)

			return writeBack(cmd, banker, scenario)
		},
	}

	addFileFlag(cmd)
	addWriteFlag(cmd)

	return cmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			numProcesses, _ := cmd.Flags().GetInt(flagProcesses)
			numResources, _ := cmd.Flags().GetInt(flagResources)
			seed, _ := cmd.Flags().GetUint64(flagSeed)

			params, errGenerate := bankers.Generate(
				&bankers.ParamsGenerate{
					NumProcesses: numProcesses,
					NumResources: numResources,
					Seed:         seed,
				},
			)
			if errGenerate != nil {
				return errGenerate
			}

			scenario := bankers.Scenario{
				ParamsNewState: *params,
			}

			if path, _ := cmd.Flags().GetString(flagFile); path != "" {
				return scenario.WriteFile(path)
			}

			return scenario.Encode(cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int(flagProcesses, 5, "Number of processes")
	cmd.Flags().Int(flagResources, 3, "Number of resource types")
	cmd.Flags().Uint64(flagSeed, uint64(os.Getpid()), "Random seed")
	cmd.Flags().StringP(flagFile, "f", "", "Write the scenario to this file instead of stdout")

	return cmd
}
