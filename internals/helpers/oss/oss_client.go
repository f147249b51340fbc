// Aliyun OSS upload pipeline for source documents. Image uploads
// (photos of signage etc.) are recompressed to webp before upload,
// everything else is stored as-is.
package helper

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 25 << 20 // 25 MB

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("OSS_ENDPOINT")
	ak := getEnv("OSS_ACCESS_KEY_ID")
	sk := getEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnv("OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

/* =======================================================================
   Image decode + webp encode
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	// fallback by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("unsupported image format: %s / %s", ct, filepath.Ext(filename))
}

// ConvertToWebP: read → decode → fit into 1600x1600 → lossy webp.
func ConvertToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(all) > maxUploadSize {
		return nil, fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() > 1600 || b.Dy() > 1600 {
		img = imaging.Fit(img, 1600, 1600, imaging.CatmullRom)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

/* =======================================================================
   Upload helpers
======================================================================= */

// UploadAsWebP recompresses an image upload and stores it as .webp.
func (s *OSSService) UploadAsWebP(fh *multipart.FileHeader, keyPrefix string) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	webpData, err := ConvertToWebP(src, fh.Filename)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unsupported image format") {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (use jpg/png/webp)")
		}
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := s.buildObjectKey(base + ".webp")
	if keyPrefix != "" {
		key = strings.Trim(keyPrefix, "/") + "/" + key
	}

	opts := []oss.Option{
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(webpData), opts...); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadDocument stores a non-image upload as-is.
func (s *OSSService) UploadDocument(fh *multipart.FileHeader, keyPrefix string) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	key := s.buildObjectKey(fh.Filename)
	if keyPrefix != "" {
		key = strings.Trim(keyPrefix, "/") + "/" + key
	}

	opts := []oss.Option{
		oss.ContentType(ct),
		oss.ContentDisposition("inline"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(all), opts...); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *OSSService) DeleteObject(key string) error {
	return s.Bucket.DeleteObject(key)
}

func (s *OSSService) PublicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, key)
}

// KeyFromURL inverts PublicURL for cleanup paths.
func (s *OSSService) KeyFromURL(url string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	base := fmt.Sprintf("https://%s.%s/", s.BucketName, host)
	return strings.TrimPrefix(url, base)
}

func (s *OSSService) buildObjectKey(filename string) string {
	var rnd [8]byte
	_, _ = rand.Read(rnd[:])
	name := strings.ReplaceAll(strings.TrimSpace(filename), " ", "_")
	key := hex.EncodeToString(rnd[:]) + "_" + name
	if s.Prefix != "" {
		return s.Prefix + "/" + key
	}
	return key
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }
