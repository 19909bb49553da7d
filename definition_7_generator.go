package bankers

import (
	"fmt"
	"math/rand/v2"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

type ParamsGenerate struct {
	ProcessNames  []string
	ResourceNames []string

	Seed uint64

	NumProcesses int `valid:"required"`
	NumResources int `valid:"required"`
}

// Generate draws a consistent configuration for tests and demos:
// allocations in [0,3), claims 1 to 3 units above the allocation
// and 2 to 5 free units on top of what is allocated.
// The same seed always yields the same params.
// Names are optional, extra names are dropped.
func Generate(params *ParamsGenerate) (*ParamsNewState, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			fmt.Errorf(
				"%w: %w",

				ErrInvalidInput,
				goerrors.ErrServiceValidation{
					ServiceName: "Bankers",
					Caller:      "Generate",
					Issue:       errValidation,
				},
			)
	}

	if params.NumProcesses < 0 || params.NumResources < 0 {
		return nil,
			fmt.Errorf(
				"%w: %w",

				ErrInvalidInput,
				goerrors.ErrNegativeInput{
					InputName: "ParamsGenerate",
				},
			)
	}

	if len(params.ProcessNames) != 0 && len(params.ProcessNames) < params.NumProcesses {
		return nil,
			errInconsistent(
				"ProcessNames",
				fmt.Errorf(
					"expected at least %d names, got %d",
					params.NumProcesses,
					len(params.ProcessNames),
				),
			)
	}

	if len(params.ResourceNames) != 0 && len(params.ResourceNames) < params.NumResources {
		return nil,
			errInconsistent(
				"ResourceNames",
				fmt.Errorf(
					"expected at least %d names, got %d",
					params.NumResources,
					len(params.ResourceNames),
				),
			)
	}

	random := rand.New(rand.NewPCG(params.Seed, params.Seed^0x9e3779b97f4a7c15))

	result := ParamsNewState{
		Allocated: make([][]int64, params.NumProcesses),
		MaxClaim:  make([][]int64, params.NumProcesses),
		Available: make([]int64, params.NumResources),

		NumProcesses: params.NumProcesses,
		NumResources: params.NumResources,
	}

	for process := range params.NumProcesses {
		result.Allocated[process] = make([]int64, params.NumResources)
		result.MaxClaim[process] = make([]int64, params.NumResources)

		for resource := range params.NumResources {
			allocated := random.Int64N(3)

			result.Allocated[process][resource] = allocated
			result.MaxClaim[process][resource] = allocated + 1 + random.Int64N(3)
			result.Available[resource] = result.Available[resource] + allocated
		}
	}

	for resource := range params.NumResources {
		result.Available[resource] = result.Available[resource] + 2 + random.Int64N(4)
	}

	if len(params.ProcessNames) != 0 {
		result.ProcessNames = copyStrings(params.ProcessNames[:params.NumProcesses])
	}

	if len(params.ResourceNames) != 0 {
		result.ResourceNames = copyStrings(params.ResourceNames[:params.NumResources])
	}

	return &result,
		nil
}
