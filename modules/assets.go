package modules

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var ErrPublishFailed = errors.New("captcha image publish failed")

// AssetStore hosts rendered challenge images. The id returned by Upload is
// what Destroy expects back; both strategies release the image with it.
type AssetStore interface {
	Upload(data []byte) (url string, id string, err error)
	Destroy(id string) error
}

// LocalAssets keeps challenge images as temp files and serves them to the
// transport by path.
type LocalAssets struct {
	Dir string
}

func NewLocalAssets(dir string) *LocalAssets {
	return &LocalAssets{Dir: dir}
}

func (l *LocalAssets) Upload(data []byte) (string, string, error) {
	path := filepath.Join(l.Dir, "captcha_"+uuid.NewString()+".png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	return path, path, nil
}

func (l *LocalAssets) Destroy(id string) error {
	return os.Remove(id)
}

// CloudinaryAssets hosts challenge images remotely; the asset id is the
// Cloudinary public id.
type CloudinaryAssets struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryAssets(cloudName, apiKey, apiSecret string) (*CloudinaryAssets, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryAssets{cld: cld}, nil
}

func (c *CloudinaryAssets) Upload(data []byte) (string, string, error) {
	resp, err := c.cld.Upload.Upload(context.Background(), bytes.NewReader(data), uploader.UploadParams{
		ResourceType: "image",
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	if resp.SecureURL == "" || resp.PublicID == "" {
		return "", "", ErrPublishFailed
	}
	return resp.SecureURL, resp.PublicID, nil
}

func (c *CloudinaryAssets) Destroy(id string) error {
	_, err := c.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{PublicID: id})
	return err
}
