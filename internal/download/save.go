package download

import (
	"io"
	"os"

	"github.com/tanq16/docgrab/internal/utils"
)

// saveFile streams the body to outputPath in fixed-size chunks and returns
// the bytes written.
func saveFile(body io.Reader, outputPath string) (int64, error) {
	outFile, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, &utils.FileSystemError{Path: outputPath, Err: err}
	}
	defer outFile.Close()

	var bytesWritten int64
	buffer := make([]byte, utils.DefaultChunkSize)
	for {
		bytesRead, readErr := body.Read(buffer)
		if bytesRead > 0 {
			written, writeErr := outFile.Write(buffer[:bytesRead])
			if writeErr != nil {
				return bytesWritten, &utils.FileSystemError{Path: outputPath, Err: writeErr}
			}
			bytesWritten += int64(written)
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return bytesWritten, &utils.FileSystemError{Path: outputPath, Err: readErr}
		}
	}
	return bytesWritten, nil
}
