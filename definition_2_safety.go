package bankers

type SafetyStep struct {
	WorkBefore []int64
	WorkAfter  []int64

	ProcessID int
}

type ResponseSafety struct {
	// Order is the safe sequence when IsSafe.
	// Otherwise it is the partial order reached before blocking.
	Order   []int
	Blocked []int
	Steps   []SafetyStep

	IsSafe bool
}

// ComputeSafeSequence runs the safety algorithm without mutating the state.
// On every pass the lowest index eligible process finishes first,
// so the result is deterministic for a given state.
func (st *State) ComputeSafeSequence() *ResponseSafety {
	work := copyVector(st.available)
	finish := make([]bool, st.numProcesses)

	need := st.Need()

	result := ResponseSafety{
		Order: make([]int, 0, st.numProcesses),
		Steps: make([]SafetyStep, 0, st.numProcesses),
	}

	for len(result.Order) < st.numProcesses {
		candidate := -1

		for process := range st.numProcesses {
			if finish[process] {
				continue
			}

			// terminated processes hold and claim nothing, they pose no risk
			if st.IsTerminated(process) {
				candidate = process

				break
			}

			if lessOrEqual(need[process], work) == -1 {
				candidate = process

				break
			}
		}

		if candidate == -1 {
			break
		}

		workBefore := copyVector(work)
		addTo(work, st.allocated[candidate])

		finish[candidate] = true

		result.Order = append(result.Order, candidate)
		result.Steps = append(
			result.Steps,
			SafetyStep{
				ProcessID:  candidate,
				WorkBefore: workBefore,
				WorkAfter:  copyVector(work),
			},
		)
	}

	for process, finished := range finish {
		if !finished {
			result.Blocked = append(result.Blocked, process)
		}
	}

	result.IsSafe = len(result.Blocked) == 0

	return &result
}

// IsSafe is a shorthand for ComputeSafeSequence().IsSafe.
func (st *State) IsSafe() bool {
	return st.ComputeSafeSequence().IsSafe
}
