package rules

import "marketplace-admin-backend/internal/domain"

var toggledJobStatus = map[domain.JobStatus]domain.JobStatus{
	domain.JobStatusActive: domain.JobStatusClosed,
	domain.JobStatusClosed: domain.JobStatusActive,
}

func CanTransitionJob(j domain.Job, action Action) Decision {
	switch action {
	case ActionApprove:
		if j.IsApproved {
			return deny("job is already approved")
		}
		return allow()
	case ActionToggleStatus:
		if !j.IsApproved {
			return deny("job must be approved before its status can change")
		}
		return allow()
	case ActionDelete:
		return allow()
	}
	return deny("action %q is not defined for jobs", action)
}

// NextJob applies action to j. Approval is one way and moves the job to the
// approved provenance. Toggling only swaps active and closed.
func NextJob(j domain.Job, action Action) (Outcome[domain.Job], error) {
	if d := CanTransitionJob(j, action); !d.Allowed {
		return Outcome[domain.Job]{Entity: j}, refuse(action, d)
	}

	switch action {
	case ActionApprove:
		j.IsApproved = true
		j.Collection = domain.CollectionApproved
		if j.Status == "" {
			j.Status = domain.JobStatusActive
		}
		return Outcome[domain.Job]{Entity: j, Changed: true}, nil
	case ActionToggleStatus:
		next, ok := toggledJobStatus[j.Status]
		if !ok {
			return Outcome[domain.Job]{Entity: j}, nil
		}
		j.Status = next
		return Outcome[domain.Job]{Entity: j, Changed: true}, nil
	default:
		return Outcome[domain.Job]{Entity: j, Deleted: true, Changed: true}, nil
	}
}
