package local_fs

import (
	"io"
	"os"

	"github.com/haierkeys/clipboard-history-service/pkg/fileurl"

	"time"
)

// getSavePath 获取保存根目录，保证以 / 结尾
func (p *LocalFS) getSavePath() string {
	savePath := p.Config.SavePath
	if savePath == "" {
		savePath = "storage/exports"
	}
	if !fileurl.IsAbsPath(savePath) {
		savePath = fileurl.PathSuffixCheckAdd(fileurl.GetExePath(), "/") + savePath
	}
	return fileurl.PathSuffixCheckAdd(savePath, "/")
}

// SendFile saves the reader content to pathKey under the save path
// SendFile 将 reader 内容保存到保存目录下的 pathKey
func (p *LocalFS) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dst := p.getSavePath() + pathKey

	if err := fileurl.CreatePath(dst, 0754); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dst, modTime, modTime)
	}
	return dst, nil
}

// SendContent saves content bytes to pathKey under the save path
// SendContent 将字节内容保存到保存目录下的 pathKey
func (p *LocalFS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	dst := p.getSavePath() + pathKey

	if err := fileurl.CreatePath(dst, 0754); err != nil {
		return "", err
	}

	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", err
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dst, modTime, modTime)
	}
	return dst, nil
}
