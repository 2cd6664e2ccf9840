package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned url",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/proconnect/abc123.png",
			want: "proconnect/abc123",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/proconnect/abc123.jpg",
			want: "proconnect/abc123",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/proconnect/abc123",
			want: "proconnect/abc123",
		},
		{
			name: "not a cloudinary delivery url",
			url:  "https://example.com/image.png",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicIDFromURL(tt.url))
		})
	}
}
