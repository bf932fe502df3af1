package s3

import (
	"context"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestAllowedFormat(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "dir/d.Png"} {
		assert.True(t, AllowedFormat(name), name)
	}
	for _, name := range []string{"a.gif", "b", "c.png.exe", "d.webp"} {
		assert.False(t, AllowedFormat(name), name)
	}
}

func TestObjectKey(t *testing.T) {
	k1 := objectKey("wanderlust_DEV", "Beach House.PNG")
	k2 := objectKey("wanderlust_DEV", "Beach House.PNG")

	assert.True(t, strings.HasPrefix(k1, "wanderlust_DEV/"))
	assert.True(t, strings.HasSuffix(k1, ".png"))
	assert.NotEqual(t, k1, k2)
	assert.NotContains(t, k1, " ")
}

func TestPublicReadPolicy(t *testing.T) {
	assert.Contains(t, publicReadPolicy("wanderlust"), `arn:aws:s3:::wanderlust/*`)
}

func TestUpload_RejectsFormatBeforeNetwork(t *testing.T) {
	// client is nil: reaching PutObject would panic.
	s := &ImageStorage{bucket: "b", folder: "f", logger: logger.NewNop()}
	_, err := s.Upload(context.Background(), domain.ImageUpload{FileName: "evil.svg", Data: strings.NewReader("<svg/>")})
	assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
}
