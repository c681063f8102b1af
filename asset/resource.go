package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// A Resource is a readable asset stream backed by a local file or an
// http(s) URL. Meshes, textures and shader sources are all loaded through
// resources.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the file name of the resource (without the directory or URL
// path prefix).
func (r *Resource) Name() string {
	return path.Base(r.url.Path)
}

// Returns the lower-case file extension of the resource including the
// leading dot.
func (r *Resource) Ext() string {
	return strings.ToLower(path.Ext(r.url.Path))
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Returns the local file path backing this resource. The second return
// value is false for remote and in-memory resources.
func (r *Resource) LocalPath() (string, bool) {
	if r.IsRemote() || r.url.Path == "" {
		return "", false
	}
	if _, err := os.Stat(r.url.Path); err != nil {
		return "", false
	}
	return filepath.Clean(r.url.Path), true
}

// Read the remaining resource contents and close the stream.
func (r *Resource) ReadAll() ([]byte, error) {
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("resource: could not read '%s': %s", r.Path(), err)
	}
	return data, nil
}

// Create a new Resource data stream. If relTo is specified and pathToResource
// does not define a scheme, the path to the new Resource is resolved relative
// to the directory of relTo. This allows a mesh to reference its texture by
// file name regardless of where the mesh itself lives.
//
// The caller must close the returned Resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	resURL, err := resolve(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(resURL.Path))
		if err != nil {
			return nil, fmt.Errorf("resource: could not open '%s': %s", resURL.Path, err)
		}
	case "http", "https":
		resp, err := http.Get(resURL.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", resURL.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", resURL.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        resURL,
	}, nil
}

// Create a resource from a reader. The name is used for error messages and
// for selecting a reader by extension.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, err := url.Parse(name)
	if err != nil {
		resURL = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        resURL,
	}
}

// Resolve pathToResource relative to the directory of relTo without opening
// it. Absolute paths and URLs are returned unchanged.
func ResolvePath(pathToResource string, relTo *Resource) (string, error) {
	resURL, err := resolve(pathToResource, relTo)
	if err != nil {
		return "", err
	}
	if resURL.Scheme == "" {
		return resURL.Path, nil
	}
	return resURL.String(), nil
}

func resolve(pathToResource string, relTo *Resource) (*url.URL, error) {
	// Normalize windows-style separators before parsing as a URL
	resURL, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, fmt.Errorf("resource: invalid path '%s': %s", pathToResource, err)
	}

	if resURL.Scheme == "" && relTo != nil && !filepath.IsAbs(resURL.Path) {
		return resolveRelative(resURL.Path, relTo)
	}
	return resURL, nil
}

func resolveRelative(relPath string, relTo *Resource) (*url.URL, error) {
	parent := *relTo.url
	if parent.Scheme != "" {
		parent.Path = path.Join(path.Dir(parent.Path), relPath)
		return &parent, nil
	}

	absParent, err := filepath.Abs(parent.Path)
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", parent.Path, err)
	}
	return &url.URL{Path: filepath.Join(filepath.Dir(absParent), relPath)}, nil
}
