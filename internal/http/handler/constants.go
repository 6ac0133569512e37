package handler

const (
	jsonKeyStatus = "status"

	paramID = "id"

	queryLibraryID = "libraryId"
	queryTags      = "tags"
	queryLimit     = "limit"
	queryOffset    = "offset"
	queryType      = "type"
	queryGalleryID = "galleryId"
	queryUnread    = "unread"
	queryUpcoming  = "upcoming"
	queryFeatured  = "featured"

	formFieldData          = "data"
	formFieldFile          = "file"
	formFieldLogo          = "logo"
	formFieldFeaturedImage = "featuredImage"

	statusOK       = "ok"
	statusDegraded = "degraded"
)

const (
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "Invalid request body"
	msgInvalidID               = "Invalid id"
	msgInvalidLibraryID        = "Invalid library id"
	msgInvalidQuery            = "Invalid query parameter"
	msgLibraryIDRequired       = "Library ID is required"
	msgFileTooLarge            = "File too large"
	msgInvalidUpload           = "Invalid file upload"
	msgEmailPasswordRequired   = "Email and password are required"
	msgSubjectBodyRequired     = "Subject and body are required"
	msgContactFieldsRequired   = "Name, email and message are required"
	msgInvalidEmail            = "Invalid email address"
)

const (
	msgStoryNotFound   = "Story not found"
	msgEventNotFound   = "Event not found"
	msgMediaNotFound   = "Media not found"
	msgLibraryNotFound = "Library not found"
	msgInvalidMedia    = "Invalid media type"
	msgInvalidEvent    = "Invalid analytics event type"
	msgEventDateReq    = "eventDate is required"
)

const (
	fieldTitle       = "title"
	fieldContent     = "content"
	fieldExcerpt     = "excerpt"
	fieldDescription = "description"
	fieldLocation    = "location"
	fieldName        = "name"
	fieldAddress     = "address"
	fieldPhone       = "phone"
	fieldWebsite     = "website"
	fieldSubject     = "subject"
	fieldMessage     = "message"
	fieldBody        = "body"
	fieldImageURL    = "imageUrl"
	fieldURL         = "url"
	fieldContentType = "contentType"
	fieldVisitorID   = "visitorId"
)
