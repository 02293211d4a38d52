package handler

import (
    "context"

    "github.com/labstack/echo/v4"

    "github.com/novakir/storefront/internal/storage"
)

// saveUpload stores the multipart file under `field` in the image store
// and returns its object path. A missing file is not an error; the
// returned pointer is nil.
func saveUpload(ctx context.Context, c echo.Context, store *storage.ImageStore, prefix, field string) (*string, error) {
    if store == nil {
        return nil, nil
    }
    fh, err := c.FormFile(field)
    if err != nil {
        // http.ErrMissingFile and multipart parse errors both land here;
        // either way there is nothing to store.
        return nil, nil
    }
    src, err := fh.Open()
    if err != nil {
        return nil, err
    }
    defer func() { _ = src.Close() }()

    path, err := store.Save(ctx, prefix, fh.Filename, src, fh.Size, fh.Header.Get("Content-Type"))
    if err != nil {
        return nil, err
    }
    return &path, nil
}
