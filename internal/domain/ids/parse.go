package ids

// ParseFolderID parses a "folder:<key>" reference.
func ParseFolderID(raw string) (FolderID, error) { return parse[folderKind](raw) }

// ParseProjectID parses a "project:<key>" reference.
func ParseProjectID(raw string) (ProjectID, error) { return parse[projectKind](raw) }

// ParseListID parses a "list:<key>" reference.
func ParseListID(raw string) (ListID, error) { return parse[listKind](raw) }

// ParseListItemID parses a "list_item:<key>" reference.
func ParseListItemID(raw string) (ListItemID, error) { return parse[listItemKind](raw) }

// ParseTagID parses a "tag:<key>" reference.
func ParseTagID(raw string) (TagID, error) { return parse[tagKind](raw) }

// ParseCardCoreID parses a "card_core:<key>" reference.
func ParseCardCoreID(raw string) (CardCoreID, error) { return parse[cardCoreKind](raw) }

// ParseCardPrintingID parses a "card_printing:<key>" reference.
func ParseCardPrintingID(raw string) (CardPrintingID, error) {
	return parse[cardPrintingKind](raw)
}

// ParseSetID parses a "set:<key>" reference.
func ParseSetID(raw string) (SetID, error) { return parse[setKind](raw) }

// ParseArtistID parses an "artist:<key>" reference.
func ParseArtistID(raw string) (ArtistID, error) { return parse[artistKind](raw) }

// The FromKey constructors build an ID from a store-native key, where the
// kind is implied by the table the key was read from.

func FolderIDFromKey(key string) (FolderID, error)             { return fromKey[folderKind](key) }
func ProjectIDFromKey(key string) (ProjectID, error)           { return fromKey[projectKind](key) }
func ListIDFromKey(key string) (ListID, error)                 { return fromKey[listKind](key) }
func ListItemIDFromKey(key string) (ListItemID, error)         { return fromKey[listItemKind](key) }
func TagIDFromKey(key string) (TagID, error)                   { return fromKey[tagKind](key) }
func CardCoreIDFromKey(key string) (CardCoreID, error)         { return fromKey[cardCoreKind](key) }
func CardPrintingIDFromKey(key string) (CardPrintingID, error) { return fromKey[cardPrintingKind](key) }
func SetIDFromKey(key string) (SetID, error)                   { return fromKey[setKind](key) }
func ArtistIDFromKey(key string) (ArtistID, error)             { return fromKey[artistKind](key) }
