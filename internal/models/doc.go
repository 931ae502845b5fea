// Package models defines the persisted DiaryKeeper entities: users and their
// diary entries, plus the closed enumerations stored as text columns.
package models
