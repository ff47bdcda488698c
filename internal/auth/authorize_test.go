package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlowell/fsubs/internal/model"
)

func TestAuthorize_TierOrdering(t *testing.T) {
	tiers := []model.Access{model.AccessBasic, model.AccessPower, model.AccessAdmin}
	for i, actorTier := range tiers {
		for j, required := range tiers {
			actor := &model.User{ID: "u-1", Username: "u", Access: actorTier}
			err := Authorize(actor, required, nil)
			if i >= j {
				assert.NoError(t, err, "%s vs %s", actorTier, required)
			} else {
				assert.ErrorIs(t, err, ErrForbidden, "%s vs %s", actorTier, required)
			}
		}
	}
}

func TestAuthorize_OwnershipOverride(t *testing.T) {
	actor := &model.User{ID: "alice-id", Username: "alice", Access: model.AccessBasic}
	meta := model.NewMetadata("alice-id", time.Now())

	for _, required := range []model.Access{model.AccessBasic, model.AccessPower, model.AccessAdmin} {
		assert.NoError(t, Authorize(actor, required, &meta), "required %s", required)
	}
}

func TestAuthorize_NonOwnerDenied(t *testing.T) {
	actor := &model.User{ID: "bob-id", Username: "bob", Access: model.AccessBasic}
	meta := model.NewMetadata("alice-id", time.Now())

	assert.ErrorIs(t, Authorize(actor, model.AccessPower, &meta), ErrForbidden)
}

// A matching username is not ownership: usernames can be freed by a rename
// and claimed by someone else, ids cannot.
func TestAuthorize_SameUsernameDifferentIDDenied(t *testing.T) {
	actor := &model.User{ID: "alice-2", Username: "alice", Access: model.AccessBasic}
	meta := model.NewMetadata("alice-1", time.Now())

	assert.ErrorIs(t, Authorize(actor, model.AccessPower, &meta), ErrForbidden)
}

func TestAuthorize_NilActorIsServerFault(t *testing.T) {
	err := Authorize(nil, model.AccessBasic, nil)
	require.ErrorIs(t, err, ErrActorUnresolved)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_Idempotent(t *testing.T) {
	actor := &model.User{ID: "carol-id", Username: "carol", Access: model.AccessPower}
	for i := 0; i < 3; i++ {
		assert.NoError(t, Authorize(actor, model.AccessPower, nil))
	}
}
