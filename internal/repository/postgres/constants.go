package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	tableLibraries        = "libraries"
	tableUsers            = "users"
	tableStories          = "stories"
	tableEvents           = "events"
	tableMedia            = "media_items"
	tableMessages         = "contact_messages"
	tableMessageResponses = "message_responses"
	tableAnalyticsEvents  = "analytics_events"
	tableAuditEvents      = "audit_events"

	errUserExists = "User already exists"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"
	errFailedBuildQueryFmt           = "failed to build query: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"

	errFailedCreateLibraryFmt = "failed to create library: %w"
	errFailedGetLibraryFmt    = "failed to get library: %w"
	errFailedListLibrariesFmt = "failed to list libraries: %w"
	errFailedUpdateLibraryFmt = "failed to update library: %w"

	errFailedCreateStoryFmt = "failed to create story: %w"
	errFailedGetStoryFmt    = "failed to get story: %w"
	errFailedListStoriesFmt = "failed to list stories: %w"
	errFailedUpdateStoryFmt = "failed to update story: %w"

	errFailedCreateEventFmt = "failed to create event: %w"
	errFailedGetEventFmt    = "failed to get event: %w"
	errFailedListEventsFmt  = "failed to list events: %w"
	errFailedUpdateEventFmt = "failed to update event: %w"
	errFailedDeleteEventFmt = "failed to delete event: %w"

	errFailedCreateMediaFmt = "failed to create media item: %w"
	errFailedGetMediaFmt    = "failed to get media item: %w"
	errFailedListMediaFmt   = "failed to list media items: %w"
	errFailedUpdateMediaFmt = "failed to update media item: %w"

	errFailedCreateMessageFmt   = "failed to create message: %w"
	errFailedGetMessageFmt      = "failed to get message: %w"
	errFailedListMessagesFmt    = "failed to list messages: %w"
	errFailedUpdateMessageFmt   = "failed to update message: %w"
	errFailedCreateResponseFmt  = "failed to create message response: %w"
	errFailedListResponsesFmt   = "failed to list message responses: %w"
	errFailedCreateAnalyticsFmt = "failed to record analytics event: %w"
	errFailedListAnalyticsFmt   = "failed to list analytics events: %w"

	errFailedExportTableFmt = "failed to export table %s: %w"
	errUnknownTableFmt      = "unknown table %q"
	errFailedApplySchemaFmt = "failed to apply schema: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedBuildQuery           = func(err error) error { return fmt.Errorf(errFailedBuildQueryFmt, err) }
	errFailedCreateUser           = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser              = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedCreateLibrary        = func(err error) error { return fmt.Errorf(errFailedCreateLibraryFmt, err) }
	errFailedGetLibrary           = func(err error) error { return fmt.Errorf(errFailedGetLibraryFmt, err) }
	errFailedListLibraries        = func(err error) error { return fmt.Errorf(errFailedListLibrariesFmt, err) }
	errFailedUpdateLibrary        = func(err error) error { return fmt.Errorf(errFailedUpdateLibraryFmt, err) }
	errFailedCreateStory          = func(err error) error { return fmt.Errorf(errFailedCreateStoryFmt, err) }
	errFailedGetStory             = func(err error) error { return fmt.Errorf(errFailedGetStoryFmt, err) }
	errFailedListStories          = func(err error) error { return fmt.Errorf(errFailedListStoriesFmt, err) }
	errFailedUpdateStory          = func(err error) error { return fmt.Errorf(errFailedUpdateStoryFmt, err) }
	errFailedCreateEvent          = func(err error) error { return fmt.Errorf(errFailedCreateEventFmt, err) }
	errFailedGetEvent             = func(err error) error { return fmt.Errorf(errFailedGetEventFmt, err) }
	errFailedListEvents           = func(err error) error { return fmt.Errorf(errFailedListEventsFmt, err) }
	errFailedUpdateEvent          = func(err error) error { return fmt.Errorf(errFailedUpdateEventFmt, err) }
	errFailedDeleteEvent          = func(err error) error { return fmt.Errorf(errFailedDeleteEventFmt, err) }
	errFailedCreateMedia          = func(err error) error { return fmt.Errorf(errFailedCreateMediaFmt, err) }
	errFailedGetMedia             = func(err error) error { return fmt.Errorf(errFailedGetMediaFmt, err) }
	errFailedListMedia            = func(err error) error { return fmt.Errorf(errFailedListMediaFmt, err) }
	errFailedUpdateMedia          = func(err error) error { return fmt.Errorf(errFailedUpdateMediaFmt, err) }
	errFailedCreateMessage        = func(err error) error { return fmt.Errorf(errFailedCreateMessageFmt, err) }
	errFailedGetMessage           = func(err error) error { return fmt.Errorf(errFailedGetMessageFmt, err) }
	errFailedListMessages         = func(err error) error { return fmt.Errorf(errFailedListMessagesFmt, err) }
	errFailedUpdateMessage        = func(err error) error { return fmt.Errorf(errFailedUpdateMessageFmt, err) }
	errFailedCreateResponse       = func(err error) error { return fmt.Errorf(errFailedCreateResponseFmt, err) }
	errFailedListResponses        = func(err error) error { return fmt.Errorf(errFailedListResponsesFmt, err) }
	errFailedCreateAnalytics      = func(err error) error { return fmt.Errorf(errFailedCreateAnalyticsFmt, err) }
	errFailedListAnalytics        = func(err error) error { return fmt.Errorf(errFailedListAnalyticsFmt, err) }
	errFailedApplySchema          = func(err error) error { return fmt.Errorf(errFailedApplySchemaFmt, err) }
)
