package model

import "encoding/base64"

// Image is a picture of a waste item submitted for classification.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// IsEmpty reports whether the image carries no bytes.
func (i *Image) IsEmpty() bool {
	return i == nil || len(i.Data) == 0
}

// DataURL encodes the image as a self-contained data URI.
func (i *Image) DataURL() string {
	if i.IsEmpty() {
		return ""
	}
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
