// Package workflow owns the approval state of library content.
package workflow

type Kind string

const (
	KindLibrary Kind = "library"
	KindStory   Kind = "story"
	KindEvent   Kind = "event"
	KindMedia   Kind = "media"
)

// Publishable reports whether records of kind carry an isPublished flag.
func (k Kind) Publishable() bool {
	return k == KindStory || k == KindEvent
}

type State struct {
	IsApproved  bool
	IsPublished bool
	IsFeatured  bool
}

// StatePatch holds the workflow fields a caller asked to change.
type StatePatch struct {
	IsApproved  *bool
	IsPublished *bool
	IsFeatured  *bool
}

// InitialState is the state of a newly created record. Approval and the
// featured flag always start false.
func InitialState(kind Kind, requestedPublish bool) State {
	return State{
		IsApproved:  false,
		IsPublished: kind.Publishable() && requestedPublish,
		IsFeatured:  false,
	}
}

// ApplyUpdate merges patch over existing. Unless privileged, approval and
// featured flags keep their existing values whatever the patch says.
func ApplyUpdate(existing State, patch StatePatch, privileged bool) State {
	next := existing
	if patch.IsPublished != nil {
		next.IsPublished = *patch.IsPublished
	}
	if !privileged {
		return next
	}
	if patch.IsApproved != nil {
		next.IsApproved = *patch.IsApproved
	}
	if patch.IsFeatured != nil {
		next.IsFeatured = *patch.IsFeatured
	}
	return next
}
