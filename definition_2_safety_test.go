package bankers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSafeSequence(t *testing.T) {
	tests := []struct {
		name            string
		params          *ParamsNewState
		expectedSafe    bool
		expectedOrder   []int
		expectedBlocked []int
	}{
		{
			name:          "1. textbook, safe",
			params:        paramsTextbook(),
			expectedSafe:  true,
			expectedOrder: []int{1, 3, 0, 2, 4},
		},
		{
			name:            "2. three processes, blocked after process 1",
			params:          paramsThreeProcesses(),
			expectedSafe:    false,
			expectedOrder:   []int{1},
			expectedBlocked: []int{0, 2},
		},
		{
			name: "3. lowest index wins among eligible",
			params: &ParamsNewState{
				Allocated: [][]int64{{1}, {1}, {1}},
				MaxClaim:  [][]int64{{2}, {2}, {2}},
				Available: []int64{1},

				NumProcesses: 3,
				NumResources: 1,
			},
			expectedSafe:  true,
			expectedOrder: []int{0, 1, 2},
		},
		{
			name: "4. scan restarts from the top after each finish",
			params: &ParamsNewState{
				Allocated: [][]int64{{0}, {2}, {0}},
				MaxClaim:  [][]int64{{3}, {3}, {1}},
				Available: []int64{1},

				NumProcesses: 3,
				NumResources: 1,
			},
			expectedSafe:  true,
			expectedOrder: []int{1, 0, 2},
		},
		{
			name: "5. nothing can start",
			params: &ParamsNewState{
				Allocated: [][]int64{{1, 0}, {0, 1}},
				MaxClaim:  [][]int64{{1, 1}, {1, 1}},
				Available: []int64{0, 0},

				NumProcesses: 2,
				NumResources: 2,
			},
			expectedSafe:    false,
			expectedOrder:   []int{},
			expectedBlocked: []int{0, 1},
		},
		{
			name: "6. terminated process finishes immediately",
			params: &ParamsNewState{
				Allocated: [][]int64{{1, 0}, {0, 0}},
				MaxClaim:  [][]int64{{5, 5}, {0, 0}},
				Available: []int64{0, 0},

				NumProcesses: 2,
				NumResources: 2,
			},
			expectedSafe:    false,
			expectedOrder:   []int{1},
			expectedBlocked: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				state := newTestState(t, tt.params)
				before := state.Clone()

				result := state.ComputeSafeSequence()
				require.Equal(t, tt.expectedSafe, result.IsSafe)
				require.Equal(t, tt.expectedOrder, result.Order)
				require.Equal(t, tt.expectedBlocked, result.Blocked)
				require.Len(t, result.Steps, len(result.Order))

				require.Equal(t, before, state, "safety check must not mutate")

				again := state.ComputeSafeSequence()
				require.Equal(t, result, again, "safety check must be deterministic")
			},
		)
	}
}

func TestSafetySteps(t *testing.T) {
	state := newTestState(t, paramsTextbook())

	result := state.ComputeSafeSequence()
	require.True(t, result.IsSafe)

	require.Equal(t,
		SafetyStep{
			ProcessID:  1,
			WorkBefore: []int64{3, 3, 2},
			WorkAfter:  []int64{5, 3, 2},
		},
		result.Steps[0],
	)

	last := result.Steps[len(result.Steps)-1]
	require.Equal(t,
		state.TotalUnits(),
		last.WorkAfter,
		"after every process finished all units are free",
	)

	for _, step := range result.Steps {
		fmt.Println(
			t.Name(),
			step.ProcessID,
			step.WorkBefore,
			step.WorkAfter,
		)
	}
}
