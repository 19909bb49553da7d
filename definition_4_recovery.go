package bankers

// Terminate returns everything the process holds to Available and zeroes
// its allocation and maximum claim. It runs no safety check.
// Terminating an already terminated process frees nothing.
func (st *State) Terminate(process int) ([]int64, error) {
	if errProcess := st.checkProcess("Terminate", process); errProcess != nil {
		return nil,
			errProcess
	}

	freed := copyVector(st.allocated[process])

	addTo(st.available, freed)

	st.allocated[process] = make([]int64, st.numResources)
	st.maxClaim[process] = make([]int64, st.numResources)

	return freed,
		nil
}

type ResponseRecover struct {
	Terminated []int
	Freed      []int64 // per resource, over all terminated processes
}

// pickVictim returns the candidate holding most units, lowest index on ties.
func (st *State) pickVictim(candidates []int) int {
	victim := candidates[0]
	held := sum(st.allocated[victim])

	for _, candidate := range candidates[1:] {
		if candidateHeld := sum(st.allocated[candidate]); candidateHeld > held {
			victim = candidate
			held = candidateHeld
		}
	}

	return victim
}

// Recover terminates one process at a time until none is blocked.
// With a nil pending matrix it runs until the state is safe, otherwise
// until DetectDeadlock over pending reports no deadlock.
func (st *State) Recover(pending [][]int64) (*ResponseRecover, error) {
	result := ResponseRecover{
		Freed: make([]int64, st.numResources),
	}

	// every termination retires one process, so at most numProcesses rounds
	for range st.numProcesses + 1 {
		var blocked []int

		if pending == nil {
			blocked = st.ComputeSafeSequence().Blocked
		} else {
			deadlocked, errDetect := st.DetectDeadlock(pending)
			if errDetect != nil {
				return nil,
					errDetect
			}

			blocked = deadlocked
		}

		if len(blocked) == 0 {
			return &result,
				nil
		}

		victim := st.pickVictim(blocked)

		freed, errTerminate := st.Terminate(victim)
		if errTerminate != nil {
			return nil,
				errTerminate
		}

		result.Terminated = append(result.Terminated, victim)
		addTo(result.Freed, freed)
	}

	return &result,
		nil
}
