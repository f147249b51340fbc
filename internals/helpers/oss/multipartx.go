package helper

import "mime/multipart"

// Field names frontends commonly use for the uploaded document.
var fileFieldCandidates = []string{
	"file", "files", "files[]",
	"document", "upload", "uploads[]",
}

// CollectUploadFile returns the first uploaded file from a multipart
// form, preferring well-known field names, then sweeping the rest.
func CollectUploadFile(form *multipart.Form) *multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	for _, key := range fileFieldCandidates {
		if fhs, ok := form.File[key]; ok {
			for _, fh := range fhs {
				if fh != nil && fh.Filename != "" {
					return fh
				}
			}
		}
	}
	for _, fhs := range form.File {
		for _, fh := range fhs {
			if fh != nil && fh.Filename != "" {
				return fh
			}
		}
	}
	return nil
}
