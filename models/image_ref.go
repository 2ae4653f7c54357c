package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// UploadPath is where locally stored uploads are served.
const UploadPath = "/uploads"

// ImageKind says where an image lives.
type ImageKind string

const (
	// ImageAbsolute is a fully-qualified URL, usually on external object storage.
	ImageAbsolute ImageKind = "absolute"
	// ImageLocal is a path under UploadPath on this server.
	ImageLocal ImageKind = "local"
)

// ImageRef points at an image. The kind is decided once, when the value is
// accepted, and stored alongside the reference.
type ImageRef struct {
	Kind ImageKind `bson:"kind" json:"kind"`
	Ref  string    `bson:"ref" json:"ref"`
}

// AbsoluteImage builds a reference to an externally hosted image.
func AbsoluteImage(url string) ImageRef {
	return ImageRef{Kind: ImageAbsolute, Ref: url}
}

// LocalImage builds a reference to a file under the static mount.
func LocalImage(path string) ImageRef {
	return ImageRef{Kind: ImageLocal, Ref: path}
}

// ParseImageRef classifies a raw reference. Unrecognized input yields a
// reference with an empty kind, which Valid rejects.
func ParseImageRef(raw string) ImageRef {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "http://"):
		return AbsoluteImage(raw)
	case isUploadPath(raw):
		return LocalImage(raw)
	}
	return ImageRef{Ref: raw}
}

func isUploadPath(raw string) bool {
	name, ok := strings.CutPrefix(raw, UploadPath+"/")
	if !ok || name == "" {
		return false
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}
	}
	return true
}

func (r ImageRef) Valid() bool {
	if r.Ref == "" {
		return false
	}
	return r.Kind == ImageAbsolute || r.Kind == ImageLocal
}

func (r ImageRef) IsZero() bool {
	return r.Kind == "" && r.Ref == ""
}

func (r ImageRef) String() string {
	return r.Ref
}

// MarshalJSON renders the plain reference string the front end renders directly.
func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Ref)
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("image must be a string: %w", err)
	}
	*r = ParseImageRef(raw)
	return nil
}

// UnmarshalBSONValue accepts both the stored {kind, ref} document and legacy plain strings.
func (r *ImageRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		var raw string
		if err := bson.UnmarshalValue(t, data, &raw); err != nil {
			return err
		}
		*r = ParseImageRef(raw)
		return nil
	case bsontype.EmbeddedDocument:
		var doc struct {
			Kind ImageKind `bson:"kind"`
			Ref  string    `bson:"ref"`
		}
		if err := bson.Unmarshal(data, &doc); err != nil {
			return err
		}
		r.Kind, r.Ref = doc.Kind, doc.Ref
		return nil
	case bsontype.Null, bsontype.Undefined:
		*r = ImageRef{}
		return nil
	}
	return fmt.Errorf("cannot decode image reference from BSON %s", t)
}
