// Package uploads implements the image-replace protocol: validate the file
// locally, upload the new object, and only then delete the object it
// supersedes. Storage objects are never deleted speculatively.
package uploads

import (
	"context"
	"mime/multipart"

	"github.com/balaiwarga/dashboard/internal/storage"
	"github.com/balaiwarga/dashboard/internal/validation"
)

// Replace runs the full protocol for one form file:
//
//  1. Validate size and MIME type locally. A validation failure returns a
//     *validation.FieldError before any network call.
//  2. Upload the new file and obtain its URL and key.
//  3. If the record already carried an image (oldURL non-empty) and the new
//     URL differs, delete the superseded object by its derived key.
//
// A failed delete of the old object fails the whole operation even though
// the new object already exists remotely; the non-nil result is still
// returned so callers can keep the new URL in form state and avoid
// re-uploading on retry.
func Replace(ctx context.Context, store storage.Storage, fh *multipart.FileHeader, fieldName string, maxSizeMB int, oldURL string) (*storage.UploadResult, error) {
	contentType := fh.Header.Get("Content-Type")
	if verr := validation.File(fh.Size, contentType, fieldName, maxSizeMB); verr != nil {
		return nil, verr
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := store.Upload(ctx, fh.Filename, f, fh.Size, contentType)
	if err != nil {
		return nil, err
	}

	if oldURL != "" && oldURL != result.URL {
		if key := storage.KeyFromURL(oldURL); key != "" {
			if err := store.Delete(ctx, key); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}
