package config

import "time"

const (
	// MaxFolderNameLength fits VARCHAR(255)
	MaxFolderNameLength = 255

	// MaxCompanyNameLength bounds the searchable company name
	MaxCompanyNameLength = 255

	// MaxURLLength bounds logo and presentation URLs
	MaxURLLength = 2048

	// MinPasswordLength matches the identity provider's own minimum
	MinPasswordLength = 6

	// MaxMeetingTitleLength fits VARCHAR(255)
	MaxMeetingTitleLength = 255

	// Meeting durations, in minutes
	DefaultMeetingMinutes = 60
	MinMeetingMinutes     = 15
	MaxMeetingMinutes     = 480

	// MaxAPIKeyNameLength fits VARCHAR(255)
	MaxAPIKeyNameLength = 255

	// LogoUploadExpiry is how long a presigned logo upload URL stays valid
	LogoUploadExpiry = 15 * time.Minute
)
