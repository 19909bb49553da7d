package bankers

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsNewState(t *testing.T) {
	tests := []struct {
		name        string
		params      *ParamsNewState
		expectedErr error
	}{
		{
			name:        "1. nil params",
			params:      nil,
			expectedErr: ErrInvalidInput,
		},
		{
			name:        "2. empty params",
			params:      &ParamsNewState{},
			expectedErr: ErrInvalidInput,
		},
		{
			name: "3. allocated above max claim",
			params: &ParamsNewState{
				Allocated: [][]int64{{2, 0}},
				MaxClaim:  [][]int64{{1, 0}},
				Available: []int64{1, 1},

				NumProcesses: 1,
				NumResources: 2,
			},
			expectedErr: ErrInconsistentInput,
		},
		{
			name: "4. missing allocation row",
			params: &ParamsNewState{
				Allocated: [][]int64{{0, 0}},
				MaxClaim:  [][]int64{{1, 0}, {1, 1}},
				Available: []int64{1, 1},

				NumProcesses: 2,
				NumResources: 2,
			},
			expectedErr: ErrInconsistentInput,
		},
		{
			name: "5. short max claim row",
			params: &ParamsNewState{
				Allocated: [][]int64{{0, 0}},
				MaxClaim:  [][]int64{{1}},
				Available: []int64{1, 1},

				NumProcesses: 1,
				NumResources: 2,
			},
			expectedErr: ErrInconsistentInput,
		},
		{
			name: "6. available length",
			params: &ParamsNewState{
				Allocated: [][]int64{{0, 0}},
				MaxClaim:  [][]int64{{1, 1}},
				Available: []int64{1},

				NumProcesses: 1,
				NumResources: 2,
			},
			expectedErr: ErrInconsistentInput,
		},
		{
			name: "7. negative available",
			params: &ParamsNewState{
				Allocated: [][]int64{{0, 0}},
				MaxClaim:  [][]int64{{1, 1}},
				Available: []int64{1, -1},

				NumProcesses: 1,
				NumResources: 2,
			},
			expectedErr: ErrInvalidInput,
		},
		{
			name: "8. negative allocation",
			params: &ParamsNewState{
				Allocated: [][]int64{{-1, 0}},
				MaxClaim:  [][]int64{{1, 1}},
				Available: []int64{1, 1},

				NumProcesses: 1,
				NumResources: 2,
			},
			expectedErr: ErrInvalidInput,
		},
		{
			name: "9. process names count",
			params: &ParamsNewState{
				ProcessNames: []string{"a", "b"},

				Allocated: [][]int64{{0, 0}},
				MaxClaim:  [][]int64{{1, 1}},
				Available: []int64{1, 1},

				NumProcesses: 1,
				NumResources: 2,
			},
			expectedErr: ErrInconsistentInput,
		},
		{
			name: "10. total units overflow",
			params: &ParamsNewState{
				Allocated: [][]int64{{1}, {0}},
				MaxClaim:  [][]int64{{1}, {5}},
				Available: []int64{math.MaxInt64},

				NumProcesses: 2,
				NumResources: 1,
			},
			expectedErr: ErrInconsistentInput,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				state, errCr := NewState(tt.params)
				require.Error(t, errCr)
				require.Nil(t, state)
				require.True(t,
					errors.Is(errCr, tt.expectedErr),
					errCr.Error(),
				)
			},
		)
	}
}

func TestLifeCycleState(t *testing.T) {
	params := paramsTextbook()

	state := newTestState(t, params)

	t.Run(
		"1. params are copied",
		func(t *testing.T) {
			params.Allocated[0][0] = 100
			params.Available[0] = 100

			require.EqualValues(t, 0, state.Allocated()[0][0])
			require.EqualValues(t, 3, state.Available()[0])

			exported := state.Allocated()
			exported[1][1] = 100

			require.EqualValues(t, 0, state.Allocated()[1][1])
		},
	)

	t.Run(
		"2. need and totals",
		func(t *testing.T) {
			require.Equal(t,
				[][]int64{
					{7, 4, 3},
					{1, 2, 2},
					{6, 0, 0},
					{0, 1, 1},
					{4, 3, 1},
				},
				state.Need(),
			)

			require.Equal(t,
				[]int64{10, 5, 7},
				state.TotalUnits(),
			)
		},
	)

	t.Run(
		"3. clone is independent",
		func(t *testing.T) {
			clone := state.Clone()
			require.Equal(t, state, clone)

			clone.allocated[2][0] = 0
			clone.available[1] = 0

			require.EqualValues(t, 3, state.allocated[2][0])
			require.EqualValues(t, 3, state.available[1])
		},
	)

	t.Run(
		"4. names",
		func(t *testing.T) {
			require.Equal(t, "P3", state.ProcessName(3))
			require.Equal(t, "B", state.ResourceName(1))
			require.Equal(t, "P9", state.ProcessName(9))

			unnamed := newTestState(t, paramsThreeProcesses())
			require.Equal(t, "P1", unnamed.ProcessName(1))
			require.Equal(t, "R2", unnamed.ResourceName(2))
		},
	)

	t.Run(
		"5. params round trip",
		func(t *testing.T) {
			recreated := newTestState(t, state.Params())

			require.Equal(t, state.Allocated(), recreated.Allocated())
			require.Equal(t, state.MaxClaim(), recreated.MaxClaim())
			require.Equal(t, state.Available(), recreated.Available())
			require.NotEqual(t, state.ID, recreated.ID)
		},
	)

	t.Run(
		"6. string",
		func(t *testing.T) {
			require.Contains(t,
				state.String(),
				"- P1: allocated [2 0 0], max [3 2 2], need [1 2 2]",
			)
		},
	)
}

func TestNewStateLargeTotals(t *testing.T) {
	state := newTestState(t,
		&ParamsNewState{
			Allocated: [][]int64{{1}, {0}},
			MaxClaim:  [][]int64{{1}, {5}},
			Available: []int64{math.MaxInt64 - 1},

			NumProcesses: 2,
			NumResources: 1,
		},
	)

	require.Equal(t, []int64{math.MaxInt64}, state.TotalUnits())

	result := state.ComputeSafeSequence()
	require.True(t, result.IsSafe)
	require.Equal(t, []int{0, 1}, result.Order)
}
