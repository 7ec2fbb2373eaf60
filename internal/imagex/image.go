// Package imagex validates and decodes inline data-URI images such as
// "data:image/png;base64,iVBORw0...".
package imagex

import (
	"encoding/base64"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/google/uuid"
)

// DefaultMaxEncodedSize caps the encoded data URI length in characters.
// Base64 inflates data by about 4/3, so the decoded image is at most
// ~0.75 of this value (roughly 3.75 MiB).
const DefaultMaxEncodedSize = 5 * 1024 * 1024

// AvatarFolder is the object key prefix for uploaded avatars.
const AvatarFolder = "avatars"

// avatarExt is appended to every generated object key.
const avatarExt = ".jpg"

var dataURIPrefix = regexp.MustCompile(`^data:image/(\w+);base64,`)

// Image is a decoded upload ready to be pushed to object storage.
type Image struct {
	Data        []byte
	ContentType string
	Key         string
}

// Validator checks data-URI images against a fixed size cap.
// The zero value is not usable, use NewValidator.
type Validator struct {
	maxEncodedSize int
}

// NewValidator returns a Validator capping input at maxEncodedSize characters.
// Non-positive values select DefaultMaxEncodedSize.
func NewValidator(maxEncodedSize int) Validator {
	if maxEncodedSize <= 0 {
		maxEncodedSize = DefaultMaxEncodedSize
	}
	return Validator{maxEncodedSize: maxEncodedSize}
}

// MaxEncodedSize reports the configured cap in characters.
func (v Validator) MaxEncodedSize() int {
	return v.maxEncodedSize
}

// Validate checks presence, format and size of s without decoding it.
func (v Validator) Validate(s string) error {
	if s == "" {
		return common.NewValidationError("image is required")
	}
	if !dataURIPrefix.MatchString(s) {
		return common.NewValidationError("invalid base64 image format")
	}
	if len(s) > v.maxEncodedSize {
		return common.NewValidationError(fmt.Sprintf("image size exceeds %d characters", v.maxEncodedSize))
	}
	return nil
}

// Decode validates s, strips the data-URI prefix and decodes the payload.
// The returned Image carries a fresh, collision-free object key.
func (v Validator) Decode(s string) (*Image, error) {
	if err := v.Validate(s); err != nil {
		return nil, err
	}

	m := dataURIPrefix.FindStringSubmatch(s)
	payload := s[len(m[0]):]
	if payload == "" {
		return nil, common.NewValidationError("image payload is empty")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, common.NewValidationError("image payload is not valid base64")
	}

	return &Image{
		Data:        data,
		ContentType: "image/" + m[1],
		Key:         NewObjectKey(AvatarFolder),
	}, nil
}

// NewObjectKey returns "<folder>/<uuid>.jpg".
func NewObjectKey(folder string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), avatarExt)
}

// EncodeDataURI builds a data URI from raw bytes and a MIME type.
func EncodeDataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
