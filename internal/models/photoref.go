package models

import "strings"

type photoKind int

const (
	photoNone photoKind = iota
	photoLocal
	photoRemote
)

// PhotoRef is a tagged reference to a pour photo. A local ref carries a bare
// filename under the managed photo directory (or, transiently, an absolute
// path to a not-yet-imported source file); a remote ref carries a fully
// qualified URL. The tag is assigned where the value is first produced, so
// downstream code never needs to sniff string prefixes.
type PhotoRef struct {
	kind photoKind
	ref  string
}

// LocalPhoto returns a ref to a photo stored (or about to be stored) locally.
func LocalPhoto(name string) PhotoRef {
	if name == "" {
		return PhotoRef{}
	}
	return PhotoRef{kind: photoLocal, ref: name}
}

// RemotePhoto returns a ref to an already-uploaded photo.
func RemotePhoto(url string) PhotoRef {
	if url == "" {
		return PhotoRef{}
	}
	return PhotoRef{kind: photoRemote, ref: url}
}

// ParsePhotoRef classifies a raw string reference. This is the only place the
// http-prefix convention is interpreted; it exists for the import and input
// boundaries where photos arrive untagged.
func ParsePhotoRef(s string) PhotoRef {
	if s == "" {
		return PhotoRef{}
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return RemotePhoto(s)
	}
	return LocalPhoto(s)
}

// IsZero reports whether no photo is referenced.
func (p PhotoRef) IsZero() bool { return p.kind == photoNone }

// IsLocal reports whether the photo still lives on this device and therefore
// needs local path resolution and, eventually, upload.
func (p PhotoRef) IsLocal() bool { return p.kind == photoLocal }

// IsRemote reports whether the photo has already been uploaded.
func (p PhotoRef) IsRemote() bool { return p.kind == photoRemote }

// String returns the raw reference: a filename or path for local photos,
// a URL for remote ones, empty for the zero value.
func (p PhotoRef) String() string { return p.ref }
