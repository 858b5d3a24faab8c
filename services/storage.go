package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"worknet/config"
	"worknet/models"
)

// Storage 文件存储抽象，服务层只依赖 保存文件->URL 的能力
type Storage interface {
	Save(file *multipart.FileHeader) (url string, mediaType models.MediaType, err error)
}

// 允许的扩展名，与MIME前缀交叉校验
var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedVideoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
}

// LocalStorage 本地磁盘存储，文件落在上传目录并通过静态路由对外提供
type LocalStorage struct {
	Dir     string
	BaseURL string
	MaxSize int64
}

// NewLocalStorage 创建本地存储
func NewLocalStorage() (*LocalStorage, error) {
	dir := config.AppConfig.UploadDir
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &LocalStorage{
		Dir:     dir,
		BaseURL: config.AppConfig.UploadBaseURL,
		MaxSize: config.AppConfig.MaxUploadMB << 20,
	}, nil
}

// Save 校验并保存文件，返回可访问的URL和附件类型
func (s *LocalStorage) Save(file *multipart.FileHeader) (string, models.MediaType, error) {
	if file.Size > s.MaxSize {
		return "", "", fmt.Errorf("%w: 文件大小超过%dMB限制", ErrValidation, s.MaxSize>>20)
	}

	mediaType, err := detectMediaType(file)
	if err != nil {
		return "", "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	// 时间戳+原文件名，避免重名覆盖
	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%d-%d%s", time.Now().UnixNano(), file.Size, ext)
	dstPath := filepath.Join(s.Dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}

	return s.BaseURL + "/" + filename, mediaType, nil
}

// detectMediaType 扩展名和MIME类型同时匹配才放行
func detectMediaType(file *multipart.FileHeader) (models.MediaType, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	if allowedImageExts[ext] && strings.HasPrefix(contentType, "image/") {
		return models.MediaImage, nil
	}
	if allowedVideoExts[ext] && strings.HasPrefix(contentType, "video/") {
		return models.MediaVideo, nil
	}
	return "", fmt.Errorf("%w: 只允许上传图片或视频文件", ErrValidation)
}
