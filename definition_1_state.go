package bankers

import (
	"errors"
	"fmt"
	"math"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

// State is the system of record: what every process holds, what it may
// still claim and what is free. Not safe for concurrent use, see Banker.
type State struct {
	processNames  []string
	resourceNames []string

	allocated [][]int64 // process | resource
	maxClaim  [][]int64 // process | resource
	available []int64   // resource

	ID uuid.UUID

	numProcesses int
	numResources int
}

type ParamsNewState struct {
	ProcessNames  []string `yaml:"processes,omitempty" json:"processes,omitempty"`
	ResourceNames []string `yaml:"resources,omitempty" json:"resources,omitempty"`

	Allocated [][]int64 `yaml:"allocated" json:"allocated"`
	MaxClaim  [][]int64 `yaml:"max_claim" json:"max_claim"`
	Available []int64   `yaml:"available" json:"available"`

	NumProcesses int `valid:"required" yaml:"num_processes" json:"num_processes"`
	NumResources int `valid:"required" yaml:"num_resources" json:"num_resources"`
}

func errInconsistent(inputName string, issue error) error {
	return fmt.Errorf(
		"%w: %w",

		ErrInconsistentInput,
		goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewState",
			Issue: goerrors.ErrInvalidInput{
				InputName: inputName,
				Issue:     issue,
			},
		},
	)
}

func checkMatrix(inputName string, rows [][]int64, numProcesses, numResources int) error {
	if len(rows) != numProcesses {
		return errInconsistent(
			inputName,
			fmt.Errorf(
				"expected %d rows, got %d",
				numProcesses,
				len(rows),
			),
		)
	}

	for process, row := range rows {
		if len(row) != numResources {
			return errInconsistent(
				inputName,
				fmt.Errorf(
					"row %d: expected %d columns, got %d",
					process,
					numResources,
					len(row),
				),
			)
		}

		if errNegative := errVector("IsValid - ParamsNewState", inputName, row, numResources); errNegative != nil {
			return errNegative
		}
	}

	return nil
}

func (param *ParamsNewState) IsValid() error {
	if param == nil {
		return fmt.Errorf(
			"%w: %w",

			ErrInvalidInput,
			goerrors.ErrNilInput{
				InputName: "ParamsNewState",
			},
		)
	}

	if _, errValidation := govalidator.ValidateStruct(param); errValidation != nil {
		return fmt.Errorf(
			"%w: %w",

			ErrInvalidInput,
			goerrors.ErrServiceValidation{
				ServiceName: "Bankers",
				Caller:      "IsValid - ParamsNewState",
				Issue:       errValidation,
			},
		)
	}

	if param.NumProcesses < 0 || param.NumResources < 0 {
		return fmt.Errorf(
			"%w: %w",

			ErrInvalidInput,
			goerrors.ErrValidation{
				Caller: "IsValid - ParamsNewState",
				Issue: goerrors.ErrNegativeInput{
					InputName: ternary(param.NumProcesses < 0, "NumProcesses", "NumResources"),
				},
			},
		)
	}

	if errAllocated := checkMatrix("Allocated", param.Allocated, param.NumProcesses, param.NumResources); errAllocated != nil {
		return errAllocated
	}

	if errMaxClaim := checkMatrix("MaxClaim", param.MaxClaim, param.NumProcesses, param.NumResources); errMaxClaim != nil {
		return errMaxClaim
	}

	if len(param.Available) != param.NumResources {
		return errInconsistent(
			"Available",
			fmt.Errorf(
				"expected %d entries, got %d",
				param.NumResources,
				len(param.Available),
			),
		)
	}

	if errNegative := errVector("IsValid - ParamsNewState", "Available", param.Available, param.NumResources); errNegative != nil {
		return errNegative
	}

	if len(param.ProcessNames) != 0 && len(param.ProcessNames) != param.NumProcesses {
		return errInconsistent(
			"ProcessNames",
			errors.New("names must be omitted or given for every process"),
		)
	}

	if len(param.ResourceNames) != 0 && len(param.ResourceNames) != param.NumResources {
		return errInconsistent(
			"ResourceNames",
			errors.New("names must be omitted or given for every resource"),
		)
	}

	for process := range param.NumProcesses {
		if exceeding := lessOrEqual(param.Allocated[process], param.MaxClaim[process]); exceeding != -1 {
			return errInconsistent(
				"Allocated",
				fmt.Errorf(
					"process %d holds %d units of resource %d above its maximum claim of %d",
					process,
					param.Allocated[process][exceeding],
					exceeding,
					param.MaxClaim[process][exceeding],
				),
			)
		}
	}

	for resource := range param.NumResources {
		total := param.Available[resource]

		for process := range param.NumProcesses {
			units := param.Allocated[process][resource]

			if total > math.MaxInt64-units {
				return errInconsistent(
					"Available",
					fmt.Errorf(
						"total units of resource %d overflow int64",
						resource,
					),
				)
			}

			total = total + units
		}
	}

	return nil
}

// NewState copies the passed matrices, later changes to the params
// do not reach the state.
func NewState(params *ParamsNewState) (*State, error) {
	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &State{
			ID: uuid.New(),

			processNames:  copyStrings(params.ProcessNames),
			resourceNames: copyStrings(params.ResourceNames),

			allocated: copyMatrix(params.Allocated),
			maxClaim:  copyMatrix(params.MaxClaim),
			available: copyVector(params.Available),

			numProcesses: params.NumProcesses,
			numResources: params.NumResources,
		},
		nil
}

func copyStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	result := make([]string, len(values))
	copy(result, values)

	return result
}

func (st *State) NumProcesses() int {
	return st.numProcesses
}

func (st *State) NumResources() int {
	return st.numResources
}

func (st *State) ProcessName(process int) string {
	if process >= 0 && process < len(st.processNames) {
		return st.processNames[process]
	}

	return fmt.Sprintf("P%d", process)
}

func (st *State) ResourceName(resource int) string {
	if resource >= 0 && resource < len(st.resourceNames) {
		return st.resourceNames[resource]
	}

	return fmt.Sprintf("R%d", resource)
}

func (st *State) checkProcess(caller string, process int) error {
	if process < 0 || process >= st.numProcesses {
		return errIndex(caller, "processID", process, st.numProcesses)
	}

	return nil
}

// Clone returns a deep copy sharing no backing arrays with st.
func (st *State) Clone() *State {
	return &State{
		ID: st.ID,

		processNames:  copyStrings(st.processNames),
		resourceNames: copyStrings(st.resourceNames),

		allocated: copyMatrix(st.allocated),
		maxClaim:  copyMatrix(st.maxClaim),
		available: copyVector(st.available),

		numProcesses: st.numProcesses,
		numResources: st.numResources,
	}
}

func (st *State) Allocated() [][]int64 {
	return copyMatrix(st.allocated)
}

func (st *State) MaxClaim() [][]int64 {
	return copyMatrix(st.maxClaim)
}

func (st *State) Available() []int64 {
	return copyVector(st.available)
}

func (st *State) need(process int) []int64 {
	result := copyVector(st.maxClaim[process])
	subtractFrom(result, st.allocated[process])

	return result
}

// Need returns MaxClaim - Allocated for every process. It is never stored.
func (st *State) Need() [][]int64 {
	result := make([][]int64, st.numProcesses)

	for process := range st.numProcesses {
		result[process] = st.need(process)
	}

	return result
}

// TotalUnits is Available plus everything allocated, per resource.
func (st *State) TotalUnits() []int64 {
	result := copyVector(st.available)

	for _, row := range st.allocated {
		addTo(result, row)
	}

	return result
}

// IsTerminated reports whether the process holds and claims nothing.
func (st *State) IsTerminated(process int) bool {
	return isZero(st.allocated[process]) && isZero(st.maxClaim[process])
}

// Params exports the state in the shape accepted by NewState.
func (st *State) Params() *ParamsNewState {
	return &ParamsNewState{
		ProcessNames:  copyStrings(st.processNames),
		ResourceNames: copyStrings(st.resourceNames),

		Allocated: st.Allocated(),
		MaxClaim:  st.MaxClaim(),
		Available: st.Available(),

		NumProcesses: st.numProcesses,
		NumResources: st.numResources,
	}
}

func (st *State) String() string {
	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf(
			"State %s (%d processes, %d resources)\n",

			st.ID,
			st.numProcesses,
			st.numResources,
		),
	)

	sb.WriteString(fmt.Sprintf("Available: %v\n", st.available))

	for process := range st.numProcesses {
		sb.WriteString(
			fmt.Sprintf(
				"- %s: allocated %v, max %v, need %v\n",

				st.ProcessName(process),
				st.allocated[process],
				st.maxClaim[process],
				st.need(process),
			),
		)
	}

	return sb.String()
}
