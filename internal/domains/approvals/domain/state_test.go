package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveState_TerminalDominatesPending(t *testing.T) {
	require.Equal(t, StateNone, DeriveState(nil))
	require.Equal(t, StateNone, DeriveState([]string{"vip", "wholesale"}))
	require.Equal(t, StatePending, DeriveState([]string{"vip", TagPending}))
	require.Equal(t, StateSent, DeriveState([]string{TagPending, TagSent}))
	require.Equal(t, StateRejected, DeriveState([]string{TagRejected, TagPending}))
}

func TestNextTags_ApproveRemovesPending(t *testing.T) {
	next := NextTags([]string{"vip", TagPending}, ActionApprove)

	require.Equal(t, []string{"vip", TagSent}, next)
	require.NotContains(t, next, TagPending)
}

func TestNextTags_RejectRemovesPending(t *testing.T) {
	next := NextTags([]string{TagPending, "vip"}, ActionReject)

	require.Equal(t, []string{"vip", TagRejected}, next)
}

func TestNextTags_TerminalNeverCoexistsWithPending(t *testing.T) {
	for _, action := range []Action{ActionApprove, ActionReject} {
		next := NextTags([]string{TagPending}, action)
		require.NotContains(t, next, TagPending)
		require.True(t, DeriveState(next).Terminal())
	}
}

func TestNextTags_MarkPendingIsIdempotent(t *testing.T) {
	once := NextTags([]string{"vip"}, ActionMarkPending)
	twice := NextTags(once, ActionMarkPending)

	require.Equal(t, []string{"vip", TagPending}, once)
	require.Equal(t, once, twice)
}

func TestNextTags_MarkPendingDoesNotReopenTerminal(t *testing.T) {
	require.Equal(t, []string{TagSent}, NextTags([]string{TagSent}, ActionMarkPending))
	require.Equal(t, []string{TagRejected}, NextTags([]string{TagRejected}, ActionMarkPending))
}

func TestNextTags_DoesNotMutateInput(t *testing.T) {
	tags := []string{"vip", TagPending}
	_ = NextTags(tags, ActionApprove)

	require.Equal(t, []string{"vip", TagPending}, tags)
}

func TestNextTags_ApproveIsIdempotentOnSent(t *testing.T) {
	once := NextTags([]string{TagPending}, ActionApprove)
	twice := NextTags(once, ActionApprove)

	require.Equal(t, []string{TagSent}, once)
	require.Equal(t, once, twice)
}

func TestParseTags_TrimsAndDropsEmpty(t *testing.T) {
	require.Equal(t, []string{"vip", TagPending}, ParseTags(" vip , MO:PENDING ,, "))
	require.Empty(t, ParseTags(""))
}

func TestJoinTags_WireForm(t *testing.T) {
	require.Equal(t, "vip, MO:SENT", JoinTags([]string{"vip", TagSent}))
}
