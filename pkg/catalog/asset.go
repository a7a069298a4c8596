package catalog

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveAsset turns an item's fileUrl into something the scene engine can
// open. Absolute URLs pass through. For remote catalogs the reference is
// resolved against the catalog URL. For file catalogs a rooted path ("/x")
// is taken relative to assetRoot and any other relative path relative to the
// catalog file's directory. An empty assetRoot defaults to that directory.
func ResolveAsset(src Source, assetRoot, fileURL string) string {
	fileURL = strings.TrimSpace(fileURL)
	if fileURL == "" {
		return ""
	}
	ref, err := url.Parse(fileURL)
	if err == nil && ref.Scheme != "" && ref.Scheme != "file" {
		return fileURL
	}
	if src.Remote() {
		if err != nil {
			return fileURL
		}
		return src.url.ResolveReference(ref).String()
	}
	if err == nil && ref.Scheme == "file" {
		return filepath.FromSlash(ref.Path)
	}

	dir := filepath.Dir(src.Path())
	if assetRoot == "" {
		assetRoot = dir
	}
	if strings.HasPrefix(fileURL, "/") {
		return filepath.Join(assetRoot, filepath.FromSlash(strings.TrimPrefix(fileURL, "/")))
	}
	return filepath.Join(dir, filepath.FromSlash(fileURL))
}
