// Package permission holds the single access policy for the API. Every
// endpoint asks the same question: may this role perform this action on
// this resource, given ownership.
package permission

import "moviehub/internal/models"

type Role string

const (
	RoleAnonymous Role = ""
	RoleUser      Role = models.RoleUser
	RoleModerator Role = models.RoleModerator
	RoleAdmin     Role = models.RoleAdmin
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
	ActionAdmin Action = "admin"
)

type Resource string

const (
	ResourceTitle    Resource = "title"
	ResourceGenre    Resource = "genre"
	ResourceCategory Resource = "category"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceUser     Resource = "user"
	ResourceSelf     Resource = "self"
)

// Can reports whether role may perform action on resource. isOwner is true
// when the requester authored the target object; creating an object counts
// as owning it.
func Can(role Role, action Action, resource Resource, isOwner bool) bool {
	switch resource {
	case ResourceTitle, ResourceGenre, ResourceCategory:
		if action == ActionRead {
			return true
		}
		return role == RoleAdmin

	case ResourceReview, ResourceComment:
		switch action {
		case ActionRead:
			return true
		case ActionWrite:
			if role == RoleAnonymous {
				return false
			}
			return isOwner || role == RoleModerator || role == RoleAdmin
		}
		return role == RoleAdmin

	case ResourceUser:
		// listing, creating and managing arbitrary accounts
		return role == RoleAdmin

	case ResourceSelf:
		if role == RoleAnonymous {
			return false
		}
		// no self-delete: the handler answers 405 before policy is asked
		return action == ActionRead || action == ActionWrite
	}

	return false
}
