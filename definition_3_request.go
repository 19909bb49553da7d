package bankers

import "fmt"

type DenialReason uint8

const (
	NotDenied DenialReason = iota
	ExceedsMaxClaim
	InsufficientAvailable
	WouldCauseUnsafeState
)

func (r DenialReason) String() string {
	switch r {
	case NotDenied:
		return "not denied"
	case ExceedsMaxClaim:
		return "exceeds maximum claim"
	case InsufficientAvailable:
		return "insufficient available"
	case WouldCauseUnsafeState:
		return "would cause unsafe state"
	}

	return fmt.Sprintf("denial reason %d", uint8(r))
}

// NoResource marks responses not pointing at a specific resource.
const NoResource = -1

type ResponseRequest struct {
	Request []int64

	// SafeSequence is the sequence proving the state safe after a grant.
	SafeSequence []int

	ProcessID int

	// ResourceID is the first offending resource for ExceedsMaxClaim
	// and InsufficientAvailable, NoResource otherwise.
	ResourceID int

	Reason  DenialReason
	Granted bool
}

func (resp *ResponseRequest) String() string {
	if resp.Granted {
		return fmt.Sprintf(
			"request %v of process %d granted, safe sequence %v",

			resp.Request,
			resp.ProcessID,
			resp.SafeSequence,
		)
	}

	return fmt.Sprintf(
		"request %v of process %d denied: %s",

		resp.Request,
		resp.ProcessID,
		resp.Reason,
	)
}

func (st *State) deny(process int, request []int64, reason DenialReason, resource int) *ResponseRequest {
	return &ResponseRequest{
		ProcessID:  process,
		Request:    copyVector(request),
		Reason:     reason,
		ResourceID: resource,
	}
}

// simulateGrant applies the request on a scratch copy.
func (st *State) simulateGrant(process int, request []int64) *State {
	tentative := st.Clone()

	subtractFrom(tentative.available, request)
	addTo(tentative.allocated[process], request)

	return tentative
}

func (st *State) commit(tentative *State) {
	st.allocated = tentative.allocated
	st.available = tentative.available
}

// RequestResources grants the request only if the resulting state stays safe.
// A denial is a regular outcome and leaves the state untouched,
// errors are returned only for malformed input.
func (st *State) RequestResources(process int, request []int64) (*ResponseRequest, error) {
	if errProcess := st.checkProcess("RequestResources", process); errProcess != nil {
		return nil,
			errProcess
	}

	if errRequest := errVector("RequestResources", "request", request, st.numResources); errRequest != nil {
		return nil,
			errRequest
	}

	if exceeding := lessOrEqual(request, st.need(process)); exceeding != -1 {
		return st.deny(process, request, ExceedsMaxClaim, exceeding),
			nil
	}

	if exceeding := lessOrEqual(request, st.available); exceeding != -1 {
		return st.deny(process, request, InsufficientAvailable, exceeding),
			nil
	}

	tentative := st.simulateGrant(process, request)

	safety := tentative.ComputeSafeSequence()
	if !safety.IsSafe {
		return st.deny(process, request, WouldCauseUnsafeState, NoResource),
			nil
	}

	st.commit(tentative)

	return &ResponseRequest{
			ProcessID:    process,
			Request:      copyVector(request),
			SafeSequence: safety.Order,
			ResourceID:   NoResource,
			Granted:      true,
		},
		nil
}
