package config

const (
	// MaxFolderNameLength is the maximum length, in runes, for folder names.
	MaxFolderNameLength = 255

	// MaxProjectNameLength is the maximum length for project names.
	MaxProjectNameLength = 255

	// MaxListNameLength is the maximum length for list names.
	MaxListNameLength = 255

	// MaxTagNameLength is the maximum length for tag names. Tags are shown
	// as chips, so they are kept short.
	MaxTagNameLength = 64

	// MaxNotesLength bounds the free-text notes on a list item.
	MaxNotesLength = 4000

	// MaxListItemQuantity bounds the copies of a card in one list item.
	MaxListItemQuantity = 9999

	// MaxFolderDepth is the deepest a folder may sit below the root folder.
	// Creating or moving a folder past it is rejected.
	MaxFolderDepth = 256
)
