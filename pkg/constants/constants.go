// Package constants provides shared constants used throughout the fiwdb codebase.
// This includes timeouts, file permissions, dataset layout names and other
// values that should be consistent across the application.
package constants

import "time"

// DefaultHTTPTimeout is the standard timeout for a single image download
const DefaultHTTPTimeout = 30 * time.Second

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Dataset layout constants describe the FIW directory and file conventions
const (
	// FamilyDirGlob matches family directories such as F0001
	FamilyDirGlob = "F????"

	// MembersFile is the per-family member table (MID, relationship columns, Gender, Name)
	MembersFile = "mid.csv"

	// RelationshipsFile is the per-family relationship table
	RelationshipsFile = "relationships.csv"

	// FoldFileGlob matches fold-labelled pair lists
	FoldFileGlob = "*-folds.csv"

	// FoldsToken is the filename token replaced by the split name
	FoldsToken = "-folds"

	// ImageExt is the extension of downloaded member photos
	ImageExt = ".jpg"
)

// Default lookup table names inside the database directory
const (
	// DefaultPIDLUT is the photo lookup table (tab-delimited)
	DefaultPIDLUT = "FIW_PIDs_new.csv"

	// DefaultRIDLUT is the relationship lookup table (comma-delimited)
	DefaultRIDLUT = "FIW_RIDs.csv"

	// DefaultFIDLUT is the family/surname lookup table (tab-delimited)
	DefaultFIDLUT = "FIW_FIDs.csv"

	// DefaultImageDir is where downloaded photos land, relative to the database directory
	DefaultImageDir = "fiwimages"
)

// Application identity
const (
	// AppName is used for the config file name and environment prefix
	AppName = "fiwdb"

	// EnvPrefix prefixes every environment variable read by viper
	EnvPrefix = "FIWDB"

	// UserAgent is sent with every download request
	UserAgent = "fiwdb/1.0"
)
