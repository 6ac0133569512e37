package service

const (
	msgLibraryIDRequired = "Library ID is required"
	msgMediaURLRequired  = "Media URL or file is required"

	msgStoryNotFound   = "Story not found"
	msgEventNotFound   = "Event not found"
	msgMediaNotFound   = "Media not found"
	msgLibraryNotFound = "Library not found"
	msgMessageNotFound = "Message not found"

	msgUploadImageFail         = "Failed to upload image"
	msgUploadMediaFail         = "Failed to upload media"
	msgUploadLogoFail          = "Failed to upload logo"
	msgUploadFeaturedImageFail = "Failed to upload featured image"

	msgCreateStoryFail   = "Failed to create story"
	msgCreateEventFail   = "Failed to create event"
	msgCreateMediaFail   = "Failed to create media"
	msgCreateLibraryFail = "Failed to create library"
	msgCreateMessageFail = "Failed to create message"
	msgCreateUserFail    = "Failed to create user"

	msgUpdateStoryFail   = "Failed to update story"
	msgUpdateEventFail   = "Failed to update event"
	msgUpdateMediaFail   = "Failed to update media"
	msgUpdateLibraryFail = "Failed to update library"
	msgUpdateMessageFail = "Failed to update message"

	msgDeleteEventFail = "Failed to delete event"

	msgFetchStoriesFail   = "Failed to fetch stories"
	msgFetchEventsFail    = "Failed to fetch events"
	msgFetchMediaFail     = "Failed to fetch media"
	msgFetchLibrariesFail = "Failed to fetch libraries"
	msgFetchMessagesFail  = "Failed to fetch messages"
	msgFetchAnalyticsFail = "Failed to fetch analytics"
	msgFetchUserFail      = "Failed to fetch user"

	msgSendReplyFail     = "Failed to send reply"
	msgRecordReplyFail   = "Failed to record reply"
	msgTrackEventFail    = "Failed to record analytics event"
	msgIssueTokenFail    = "Failed to issue token"
	msgHashPasswordFail  = "Failed to hash password"
	msgUserAlreadyExists = "User already exists"
)
