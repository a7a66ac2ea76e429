package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned delivery URL",
			url:  "https://res.cloudinary.com/demo/image/upload/v1700000000/profiles/abc123.jpg",
			want: "profiles/abc123",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/profiles/abc123.png",
			want: "profiles/abc123",
		},
		{
			name: "nested folder",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/profiles/2026/abc.webp",
			want: "profiles/2026/abc",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v1700000000/profiles/abc123",
			want: "profiles/abc123",
		},
		{
			name: "foreign URL",
			url:  "https://example.com/photos/abc123.jpg",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicIDFromURL(tc.url))
		})
	}
}
