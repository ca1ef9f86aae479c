package assethost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURL(t *testing.T) {
	b := URLBuilder{CloudName: "demo"}

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_200,h_150,c_fill,q_auto,f_auto/health-records/u1/abc",
		b.ImageURL("health-records/u1/abc", Transform{Width: 200, Height: 150}))

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/c_fill,q_auto,f_auto/abc",
		b.ImageURL("abc", Transform{}), "defaults are always applied")

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_64,c_thumb,q_80,f_webp/abc",
		b.ImageURL("abc", Transform{Width: 64, Crop: "thumb", Quality: "80", Format: "webp"}))
}

func TestImageURL_Empty(t *testing.T) {
	assert.Empty(t, URLBuilder{CloudName: "demo"}.ImageURL("", Transform{}))
	assert.Empty(t, URLBuilder{}.ImageURL("abc", Transform{}))
}

func TestImageURL_CustomBase(t *testing.T) {
	b := URLBuilder{CloudName: "demo", DeliveryBase: "http://127.0.0.1:9999/"}
	assert.Equal(t, "http://127.0.0.1:9999/demo/image/upload/c_fill,q_auto,f_auto/abc", b.ImageURL("abc", Transform{}))
}

func TestIsImageFormat(t *testing.T) {
	for _, f := range []string{"jpg", "JPEG", "png", "gif", "webp"} {
		assert.True(t, IsImageFormat(f), f)
	}
	for _, f := range []string{"pdf", "", "svg", "mp4"} {
		assert.False(t, IsImageFormat(f), f)
	}
}
