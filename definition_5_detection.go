package bankers

import (
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

// DetectDeadlock returns the processes that cannot finish given the
// outstanding requests in pending (process | resource).
// Processes holding nothing cannot be part of a deadlock and start finished.
func (st *State) DetectDeadlock(pending [][]int64) ([]int, error) {
	if len(pending) != st.numProcesses {
		return nil,
			fmt.Errorf(
				"%w: %w",

				ErrInvalidInput,
				goerrors.ErrInvalidInput{
					Caller:     "DetectDeadlock",
					InputName:  "pending",
					InputValue: len(pending),
					Issue: fmt.Errorf(
						"expected %d rows",
						st.numProcesses,
					),
				},
			)
	}

	for _, row := range pending {
		if errRow := errVector("DetectDeadlock", "pending", row, st.numResources); errRow != nil {
			return nil,
				errRow
		}
	}

	work := copyVector(st.available)
	finish := make([]bool, st.numProcesses)

	for process := range st.numProcesses {
		finish[process] = isZero(st.allocated[process])
	}

	for {
		candidate := -1

		for process := range st.numProcesses {
			if !finish[process] && lessOrEqual(pending[process], work) == -1 {
				candidate = process

				break
			}
		}

		if candidate == -1 {
			break
		}

		addTo(work, st.allocated[candidate])

		finish[candidate] = true
	}

	var deadlocked []int

	for process, finished := range finish {
		if !finished {
			deadlocked = append(deadlocked, process)
		}
	}

	return deadlocked,
		nil
}
