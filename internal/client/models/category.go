package models

import (
	"path"
	"strings"
)

// Category is the coarse type of a record, derived from its file name.
type Category string

const (
	CategoryDocument Category = "Document"
	CategoryImage    Category = "Image"
	CategoryLab      Category = "Lab"
	CategoryRecord   Category = "Record"
	// CategoryPrescription only appears on seeded demo data.
	CategoryPrescription Category = "Rx"
)

// CategoryAll is the query filter value that matches every category.
const CategoryAll = "all"

var categoryByExt = map[string]Category{
	"pdf":  CategoryDocument,
	"doc":  CategoryDocument,
	"docx": CategoryDocument,
	"jpg":  CategoryImage,
	"jpeg": CategoryImage,
	"png":  CategoryImage,
	"gif":  CategoryImage,
	"webp": CategoryImage,
	"xls":  CategoryLab,
	"xlsx": CategoryLab,
}

// ExtensionOf returns the lowercased text after the last dot of name,
// or "" when the base name has no dot.
func ExtensionOf(name string) string {
	ext := path.Ext(strings.ReplaceAll(name, "\\", "/"))
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// CategoryFromName derives the category of a file from its extension.
// Unknown or missing extensions yield CategoryRecord.
func CategoryFromName(name string) Category {
	if c, ok := categoryByExt[ExtensionOf(name)]; ok {
		return c
	}
	return CategoryRecord
}
