package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromName(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"report.pdf", CategoryDocument},
		{"letter.DOC", CategoryDocument},
		{"notes.docx", CategoryDocument},
		{"scan.jpg", CategoryImage},
		{"scan.JPEG", CategoryImage},
		{"xray.png", CategoryImage},
		{"anim.gif", CategoryImage},
		{"photo.webp", CategoryImage},
		{"bloodwork.xls", CategoryLab},
		{"bloodwork.xlsx", CategoryLab},
		{"archive.zip", CategoryRecord},
		{"vector.svg", CategoryRecord},
		{"README", CategoryRecord},
		{"", CategoryRecord},
		{"trailing.", CategoryRecord},
		{"multi.part.name.PDF", CategoryDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFromName(tt.name))
		})
	}
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "pdf", ExtensionOf("Lab Report - Feb.PDF"))
	assert.Equal(t, "", ExtensionOf("Makefile"))
	assert.Equal(t, "", ExtensionOf("dir.d/file"))
	assert.Equal(t, "gz", ExtensionOf("backup.tar.gz"))
	assert.Equal(t, "png", ExtensionOf(`C:\scans\x.png`))
}
