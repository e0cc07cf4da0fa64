package rules

import "marketplace-admin-backend/internal/domain"

type userRule struct {
	from    []domain.UserStatus
	to      domain.UserStatus
	deletes bool
	refusal string
}

var userRules = map[Action]userRule{
	ActionApprove: {
		from:    []domain.UserStatus{domain.UserStatusPending},
		to:      domain.UserStatusActive,
		refusal: "user is not pending approval",
	},
	ActionReject: {
		from:    []domain.UserStatus{domain.UserStatusPending},
		deletes: true,
		refusal: "only pending users can be rejected",
	},
	ActionSuspend: {
		from:    []domain.UserStatus{domain.UserStatusActive},
		to:      domain.UserStatusSuspended,
		refusal: "only active users can be suspended",
	},
	ActionActivate: {
		from:    []domain.UserStatus{domain.UserStatusSuspended},
		to:      domain.UserStatusActive,
		refusal: "only suspended users can be activated",
	},
	ActionDelete: {
		from:    []domain.UserStatus{domain.UserStatusPending, domain.UserStatusSuspended},
		deletes: true,
		refusal: "active users must be suspended before they can be deleted",
	},
}

func CanTransitionUser(u domain.User, action Action) Decision {
	if u.IsAdmin() {
		return deny("admin accounts cannot be moderated")
	}
	rule, ok := userRules[action]
	if !ok {
		return deny("action %q is not defined for users", action)
	}
	for _, s := range rule.from {
		if u.Status == s {
			return allow()
		}
	}
	return deny("%s", rule.refusal)
}

func NextUser(u domain.User, action Action) (Outcome[domain.User], error) {
	if d := CanTransitionUser(u, action); !d.Allowed {
		return Outcome[domain.User]{Entity: u}, refuse(action, d)
	}
	rule := userRules[action]
	if rule.deletes {
		return Outcome[domain.User]{Entity: u, Deleted: true, Changed: true}, nil
	}
	u.Status = rule.to
	return Outcome[domain.User]{Entity: u, Changed: true}, nil
}
