package models

import "gorm.io/datatypes"

// StringList is a set-like list of free-text tags stored as a JSON column
// (JSONB on Postgres, JSON on SQLite in tests). Element order carries no
// meaning for filtering.
type StringList = datatypes.JSONSlice[string]
