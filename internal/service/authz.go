package service

import (
	"context"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
)

// roleGate is the single capability check in front of every engine
// operation. It resolves the actor and verifies the role the operation
// demands; an unresolvable actor is an authorization failure, not a
// not-found, so callers cannot probe for account existence.
type roleGate struct {
	users repository.UserRepository
}

func newRoleGate(users repository.UserRepository) roleGate {
	return roleGate{users: users}
}

func (g roleGate) require(ctx context.Context, actorID int32, role domain.Role) (*domain.User, error) {
	actor, err := g.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != role {
		return nil, apperr.Authorization("operation requires role %s", role)
	}
	return actor, nil
}

// resolve looks the actor up for operations that are role-aware but not
// role-exclusive.
func (g roleGate) resolve(ctx context.Context, actorID int32) (*domain.User, error) {
	actor, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Authorization("unknown actor")
		}
		return nil, err
	}
	return actor, nil
}
