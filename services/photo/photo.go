// Package photosvc stores uploaded member photos on the local disk.
package photosvc

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // register the webp decoder

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var (
	allowedExts = map[string]struct{}{".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}}

	// errors
	ErrUnsupportedFile = errors.New("only image files are allowed (jpg, jpeg, png, gif, webp)")
	ErrInvalidImage    = errors.New("the file is not a valid image")
)

type Service struct {
	dir       string
	urlPrefix string
	maxDim    int
}

// NewService creates dir when needed. Stored photos are served under urlPrefix.
func NewService(dir, urlPrefix string, maxDim int) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating uploads dir")
	}
	return &Service{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		maxDim:    maxDim,
	}, nil
}

// CheckFilename fails with ErrUnsupportedFile unless filename has an image extension.
func CheckFilename(filename string) error {
	if _, ok := allowedExts[strings.ToLower(filepath.Ext(filename))]; !ok {
		return ErrUnsupportedFile
	}
	return nil
}

// Save decodes the image, shrinks it to fit maxDim x maxDim and stores it as a JPEG.
// It returns the public url of the stored file.
func (svc *Service) Save(r io.Reader, filename string) (string, error) {
	if err := CheckFilename(filename); err != nil {
		return "", err
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImage
	}
	if svc.maxDim > 0 {
		img = imaging.Fit(img, svc.maxDim, svc.maxDim, imaging.Lanczos)
	}

	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(svc.dir, name), imaging.JPEGQuality(85)); err != nil {
		// no upload can succeed anymore
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", core.NewShutdownError("uploads dir is unusable: " + err.Error())
		}
		return "", errors.Wrap(err, "saving photo")
	}
	return svc.urlPrefix + "/" + name, nil
}

// Remove deletes a previously saved photo. Urls not served by this service are ignored.
func (svc *Service) Remove(url string) error {
	prefix := svc.urlPrefix + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(url, prefix))
	if err := os.Remove(filepath.Join(svc.dir, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing photo")
	}
	return nil
}
