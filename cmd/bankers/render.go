package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/TudorHulban/bankers"
	"github.com/olekukonko/tablewriter"
)

func formatVector(values []int64) string {
	parts := make([]string, len(values))

	for ix, value := range values {
		parts[ix] = fmt.Sprint(value)
	}

	return strings.Join(parts, " ")
}

func processNames(state *bankers.State, processes []int) string {
	names := make([]string, len(processes))

	for ix, process := range processes {
		names[ix] = state.ProcessName(process)
	}

	return strings.Join(names, ", ")
}

func renderState(w io.Writer, state *bankers.State) {
	allocated := state.Allocated()
	maxClaim := state.MaxClaim()
	need := state.Need()

	data := make([][]string, 0, state.NumProcesses())

	for process := range state.NumProcesses() {
		data = append(
			data,
			[]string{
				state.ProcessName(process),
				formatVector(allocated[process]),
				formatVector(maxClaim[process]),
				formatVector(need[process]),
			},
		)
	}

	resources := make([]string, state.NumResources())
	for resource := range resources {
		resources[resource] = state.ResourceName(resource)
	}

	fmt.Fprintf(w, "RESOURCES  %s\n", strings.Join(resources, " "))
	fmt.Fprintf(w, "AVAILABLE  %s\n\n", formatVector(state.Available()))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PROCESS", "ALLOCATED", "MAX", "NEED"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func renderSafety(w io.Writer, state *bankers.State, safety *bankers.ResponseSafety) {
	if safety.IsSafe {
		fmt.Fprintf(w, "\nSAFE, sequence: %s\n", processNames(state, safety.Order))

		return
	}

	fmt.Fprintf(
		w,
		"\nUNSAFE, reached: %s, blocked: %s\n",
		processNames(state, safety.Order),
		processNames(state, safety.Blocked),
	)
}
