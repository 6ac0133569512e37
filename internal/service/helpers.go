package service

import (
	"context"
	"sort"

	"library-cms/internal/events"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options carries the collaborators every service shares.
// Nil Publisher and Clock default to a no-op publisher and the wall clock.
type Options struct {
	Logger    zerolog.Logger
	Publisher EventPublisher
	Clock     clock.Clock
}

type deps struct {
	log       zerolog.Logger
	publisher EventPublisher
	clock     clock.Clock
}

func newDeps(opts Options) deps {
	d := deps{log: opts.Logger, publisher: opts.Publisher, clock: opts.Clock}
	if d.publisher == nil {
		d.publisher = events.Noop{}
	}
	if d.clock == nil {
		d.clock = clock.New()
	}
	return d
}

// publish emits a lifecycle event. Delivery failures are logged and never
// fail the request that triggered them.
func (d deps) publish(ctx context.Context, typ events.Type, resource string, id uuid.UUID, libraryID *uuid.UUID, actorID *uuid.UUID) {
	e := events.Event{
		Type:       typ,
		Resource:   resource,
		ResourceID: id,
		LibraryID:  libraryID,
		ActorID:    actorID,
		OccurredAt: d.clock.Now().UTC(),
	}
	if err := d.publisher.Publish(ctx, e); err != nil {
		d.log.Warn().Err(err).Str("event", string(typ)).Str("id", id.String()).Msg("failed to publish content event")
	}
}

// mergeTags returns the sorted, de-duplicated union of tag sets.
func mergeTags(sets ...[]string) []string {
	seen := make(map[string]struct{})
	for _, tags := range sets {
		for _, t := range tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func ptr[T any](v T) *T {
	return &v
}

func idPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
