package database

import "fmt"

// TableNames holds the prefixed table names for the current environment
type TableNames struct {
	Folders   string
	Projects  string
	Lists     string
	ListItems string
	Tags      string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders:   fmt.Sprintf("%sfolders", prefix),
		Projects:  fmt.Sprintf("%sprojects", prefix),
		Lists:     fmt.Sprintf("%slists", prefix),
		ListItems: fmt.Sprintf("%slist_items", prefix),
		Tags:      fmt.Sprintf("%stags", prefix),
	}
}
