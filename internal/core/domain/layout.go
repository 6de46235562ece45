package domain

import "time"

const (
	// StoreSuffix is the file extension of encrypted entries.
	StoreSuffix = ".gpg"

	// StoreDirEnvVar selects a non-default store root.
	StoreDirEnvVar = "PASSWORD_STORE_DIR"

	// ClipTimeEnvVar is read by pass to decide when to clear the clipboard.
	ClipTimeEnvVar = "PASSWORD_STORE_CLIP_TIME"

	// DefaultStoreDirName is the store directory below the home directory.
	DefaultStoreDirName = ".password-store"

	// ConfigDirName is the directory below the user config dir holding partout's config.
	ConfigDirName = "partout"

	// ConfigFileName is the name of the config file.
	ConfigFileName = "config.yaml"

	// DefaultClipTimeout matches the clipboard timeout of pass.
	DefaultClipTimeout = 45 * time.Second

	// DefaultEventBuffer is the default capacity of the event channel.
	DefaultEventBuffer = 64
)
