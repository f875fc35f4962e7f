package inkcut

import "image"

// RequestKind identifies a request type. The client keeps at most one
// outstanding request per kind.
type RequestKind uint8

const (
	KindBuildBase RequestKind = iota
	KindPreviewMorph
	KindExportMask
)

// String returns the protocol name of the kind.
func (k RequestKind) String() string {
	switch k {
	case KindBuildBase:
		return "buildBase"
	case KindPreviewMorph:
		return "previewMorph"
	case KindExportMask:
		return "exportMask"
	default:
		return "unknown"
	}
}

// Request is a message to the worker. The set of implementations is
// closed: *BuildBaseRequest, *PreviewMorphRequest and *ExportMaskRequest.
type Request interface {
	Kind() RequestKind
	isRequest()
}

// BuildBaseRequest builds a new base, discarding the previous one.
type BuildBaseRequest struct {
	Input BuildInput
}

// PreviewMorphRequest re-thresholds the preview field.
type PreviewMorphRequest struct {
	// Offset is the stroke offset in preview pixels; positive thickens.
	Offset float64
}

// ExportMaskRequest re-thresholds the full-resolution field.
type ExportMaskRequest struct {
	// Offset is the stroke offset in working pixels; positive thickens.
	Offset float64

	// Package, when set, also packages the mask into a color cutout on the
	// worker.
	Package *ExportOptions
}

func (*BuildBaseRequest) Kind() RequestKind    { return KindBuildBase }
func (*PreviewMorphRequest) Kind() RequestKind { return KindPreviewMorph }
func (*ExportMaskRequest) Kind() RequestKind   { return KindExportMask }

func (*BuildBaseRequest) isRequest()    {}
func (*PreviewMorphRequest) isRequest() {}
func (*ExportMaskRequest) isRequest()   {}

// Response is a message from the worker, correlated to its request by ID.
// The set of implementations is closed: *BaseDone, *PreviewMask,
// *ExportMaskDone and *ErrorEvent.
type Response interface {
	RequestID() uint64
	isResponse()
}

// BaseDone reports a successful build.
type BaseDone struct {
	ID   uint64
	Info BaseInfo
}

// PreviewMask carries a preview-resolution mask.
type PreviewMask struct {
	ID   uint64
	Mask *Mask
}

// ExportMaskDone carries a full-resolution mask and, when requested, the
// packaged cutout.
type ExportMaskDone struct {
	ID    uint64
	Mask  *Mask
	Image *image.NRGBA
}

// ErrorEvent reports a failed request. It replaces panics and errors that
// would otherwise cross the worker boundary.
type ErrorEvent struct {
	ID   uint64
	Kind RequestKind
	Err  error
}

func (r *BaseDone) RequestID() uint64       { return r.ID }
func (r *PreviewMask) RequestID() uint64    { return r.ID }
func (r *ExportMaskDone) RequestID() uint64 { return r.ID }
func (r *ErrorEvent) RequestID() uint64     { return r.ID }

func (*BaseDone) isResponse()       {}
func (*PreviewMask) isResponse()    {}
func (*ExportMaskDone) isResponse() {}
func (*ErrorEvent) isResponse()     {}
