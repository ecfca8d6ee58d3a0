package policy

import (
	"github.com/deniz/coursehub/internal/app/models"
)

// Action identifies an operation gated by the authorization policy.
type Action string

const (
	ActionCreateUser Action = "user:create"
	ActionReadUser   Action = "user:read"

	ActionCreateCourse     Action = "course:create"
	ActionUpdateCourse     Action = "course:update"
	ActionDeleteCourse     Action = "course:delete"
	ActionReadRoster       Action = "course:roster"
	ActionModifyEnrollment Action = "course:enroll"

	ActionCreateAssignment Action = "assignment:create"
	ActionUpdateAssignment Action = "assignment:update"
	ActionDeleteAssignment Action = "assignment:delete"

	ActionListSubmissions  Action = "submission:list"
	ActionCreateSubmission Action = "submission:create"
)

// Resource carries the attributes of the target the policy decides on.
// Callers load the parent course before evaluating ownership-gated
// actions; a missing parent is NotFound, never a policy denial.
type Resource struct {
	// CourseInstructorID is the current owner of the (parent) course for
	// ownership-gated actions.
	CourseInstructorID int64
	// TargetUserID is the user being read for ActionReadUser.
	TargetUserID int64
	// TargetRole is the role being assigned for ActionCreateUser.
	TargetRole models.RoleType
}

// Decision is the outcome of a policy evaluation. Reason is the single
// canonical user-visible string for a denial.
type Decision struct {
	Allowed bool
	Reason  string
}

// Canonical denial reasons.
const (
	ReasonNotPermitted   = "Unauthorized to access the specified resource"
	ReasonUserCreation   = "Unauthorized to create a user with the specified role"
	ReasonNotCourseOwner = "Only the course instructor or an admin may perform this action"
	ReasonStudentsOnly   = "Only students may submit to an assignment"
	ReasonSelfAccessOnly = "Users may only access their own profile"
	ReasonAdminOnly      = "Only admins may perform this action"
)

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Can evaluates whether actor may perform action on the described resource.
// It is a pure decision table: all required resource attributes must be
// loaded by the caller beforehand.
func Can(actor *models.User, action Action, res Resource) Decision {
	if actor == nil {
		return deny(ReasonNotPermitted)
	}

	switch action {
	case ActionCreateUser:
		// Any authenticated user may create students; elevated roles are
		// admin-only.
		if res.TargetRole == models.RoleStudent {
			return allow()
		}
		if actor.Role == models.RoleAdmin {
			return allow()
		}
		return deny(ReasonUserCreation)

	case ActionReadUser:
		if actor.ID == res.TargetUserID {
			return allow()
		}
		return deny(ReasonSelfAccessOnly)

	case ActionCreateCourse, ActionDeleteCourse:
		if actor.Role == models.RoleAdmin {
			return allow()
		}
		return deny(ReasonAdminOnly)

	case ActionUpdateCourse, ActionReadRoster, ActionModifyEnrollment,
		ActionCreateAssignment, ActionUpdateAssignment, ActionDeleteAssignment,
		ActionListSubmissions:
		return canManageCourse(actor, res.CourseInstructorID)

	case ActionCreateSubmission:
		if actor.Role == models.RoleStudent {
			return allow()
		}
		return deny(ReasonStudentsOnly)
	}

	return deny(ReasonNotPermitted)
}

// canManageCourse implements the shared admin-or-owning-instructor rule.
func canManageCourse(actor *models.User, instructorID int64) Decision {
	if actor.Role == models.RoleAdmin {
		return allow()
	}
	if actor.Role == models.RoleInstructor && actor.ID == instructorID {
		return allow()
	}
	return deny(ReasonNotCourseOwner)
}
