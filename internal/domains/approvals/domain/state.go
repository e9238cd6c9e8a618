package domain

import "strings"

// Workflow tags persisted on the source order. They are the sole record of
// workflow state; no local ledger exists.
const (
	TagPending  = "MO:PENDING"
	TagSent     = "MO:SENT"
	TagRejected = "MO:REJECTED"
)

// State enumerates the workflow progression derived from the tag set.
type State int

const (
	StateNone State = iota
	StatePending
	StateSent
	StateRejected
)

// String renders the state for logs and responses.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSent:
		return "sent"
	case StateRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateSent || s == StateRejected
}

// Action is a requested workflow transition.
type Action int

const (
	ActionMarkPending Action = iota
	ActionApprove
	ActionReject
)

// DeriveState computes the workflow state from a tag set. Terminal tags
// dominate a stale pending tag.
func DeriveState(tags []string) State {
	state := StateNone
	for _, tag := range tags {
		switch tag {
		case TagSent:
			return StateSent
		case TagRejected:
			return StateRejected
		case TagPending:
			state = StatePending
		}
	}
	return state
}

// NextTags returns the tag set after applying an action. It never mutates the
// input. Adding a terminal tag always removes the pending tag, so a
// post-transition tag set cannot hold pending and terminal together.
// ActionMarkPending on an order that already reached a terminal state is a
// no-op: terminal orders are not reopened.
func NextTags(tags []string, action Action) []string {
	switch action {
	case ActionMarkPending:
		if DeriveState(tags).Terminal() || containsTag(tags, TagPending) {
			return append([]string(nil), tags...)
		}
		return append(append([]string(nil), tags...), TagPending)
	case ActionApprove:
		return withTerminal(tags, TagSent)
	case ActionReject:
		return withTerminal(tags, TagRejected)
	default:
		return append([]string(nil), tags...)
	}
}

func withTerminal(tags []string, terminal string) []string {
	next := make([]string, 0, len(tags)+1)
	for _, tag := range tags {
		if tag == TagPending || tag == terminal {
			continue
		}
		next = append(next, tag)
	}
	return append(next, terminal)
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

// ParseTags splits the platform's comma-joined tag string into a clean set.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// JoinTags renders a tag set in the platform's comma-joined wire form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
