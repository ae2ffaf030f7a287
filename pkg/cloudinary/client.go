package cloudinary

import (
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// New builds a client from url, or from CLOUDINARY_URL when url is empty.
func New(url string) (*cloudinary.Cloudinary, error) {
	if strings.TrimSpace(url) == "" {
		return cloudinary.New()
	}
	return cloudinary.NewFromURL(url)
}
